package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"aura-bijoux/internal/model"
)

const defaultCountry = "Portugal"

var (
	zipCodePattern = regexp.MustCompile(`^\d{4}-\d{3}$|^\d{4}$`)
	cardPattern    = regexp.MustCompile(`^\d{16}$`)
	expiryPattern  = regexp.MustCompile(`^(\d{2})/\d{2}$`)
	cvvPattern     = regexp.MustCompile(`^\d{3}$`)
)

// PlaceOrder turns the cart into an order. Every line is checked against the
// live stock; if any line exceeds it nothing changes and the error lists the
// affected lines. On success prices are frozen, stock is taken, loyalty points
// are credited to the session user and the cart is cleared, all at once.
func (s *Store) PlaceOrder(req model.CheckoutRequest) (model.Order, error) {
	if err := validateCheckout(req); err != nil {
		return model.Order{}, err
	}

	var placed model.Order
	err := s.update(func() error {
		if len(s.cart) == 0 {
			return model.ErrEmptyCart
		}

		var shortfalls []model.StockShortfall
		for _, item := range s.cart {
			if item.Quantity < 1 {
				return model.NewValidationError(map[string]string{
					"cart": fmt.Sprintf("invalid quantity %d for %s", item.Quantity, item.ProductID),
				})
			}
			available := 0
			if p := s.productLocked(item.ProductID); p != nil {
				available = p.Stock
			}
			if item.Quantity > available {
				shortfalls = append(shortfalls, model.StockShortfall{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: available,
				})
			}
		}
		if len(shortfalls) > 0 {
			return model.NewStockExceededError(shortfalls)
		}

		lines := make([]model.OrderLine, 0, len(s.cart))
		for _, item := range s.cart {
			p := s.productLocked(item.ProductID)
			line := model.OrderLine{
				ProductID: p.ID,
				Name:      p.Name,
				UnitPrice: EffectivePrice(*p, s.settings),
				Quantity:  item.Quantity,
			}
			if len(p.Images) > 0 {
				line.Image = p.Images[0]
			}
			lines = append(lines, line)
		}
		quote := QuoteOrder(lines, req.Gift.LuxuryPackaging)

		address := req.Address
		address.ID = s.ids.NewID("ADR")
		address.IsDefault = false
		if address.Country == "" {
			address.Country = defaultCountry
		}

		order := &model.Order{
			ID:              s.ids.NewID("ORD"),
			UserID:          model.GuestUserID,
			Items:           lines,
			Subtotal:        quote.Subtotal,
			Shipping:        quote.Shipping,
			GiftFee:         quote.GiftFee,
			Total:           quote.Total,
			Status:          model.OrderProcessing,
			CreatedAt:       s.now(),
			Address:         address,
			IsGift:          req.Gift.IsGift,
			LuxuryPackaging: req.Gift.LuxuryPackaging,
		}
		if req.Gift.IsGift {
			order.GiftMessage = strings.TrimSpace(req.Gift.GiftMessage)
		}

		for _, item := range s.cart {
			p := s.productLocked(item.ProductID)
			p.Stock -= item.Quantity
		}
		if u := s.sessionUserLocked(); u != nil {
			order.UserID = u.ID
			order.PointsAwarded = PointsFor(order.Total)
			u.Points = addClamped(u.Points, order.PointsAwarded)
		}

		s.orders = append(s.orders, order)
		s.cart = nil
		placed = order.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("order rejected")
		return model.Order{}, err
	}

	s.logger.Info().
		Str("order_id", placed.ID).
		Str("user_id", placed.UserID).
		Int("item_count", len(placed.Items)).
		Str("total", placed.Total.String()).
		Int("points", placed.PointsAwarded).
		Msg("order placed")
	return placed, nil
}

// UpdateOrderStatus moves an order along its lifecycle. Cancelling returns
// the order's quantities to stock.
func (s *Store) UpdateOrderStatus(id string, status model.OrderStatus) (model.Order, error) {
	var updated model.Order
	err := s.update(func() error {
		if !status.Valid() {
			return model.NewValidationError(map[string]string{"status": fmt.Sprintf("unknown status %q", status)})
		}
		o := s.orderLocked(id)
		if o == nil {
			return model.ErrOrderNotFound
		}
		if !o.Status.CanTransitionTo(status) {
			return model.NewDomainError(model.KindInvalidTransition, model.ErrCodeInvalidTransition,
				fmt.Sprintf("Order cannot move from %s to %s", o.Status, status))
		}

		previous := o.Status
		o.Status = status
		if status == model.OrderCancelled {
			for _, line := range o.Items {
				if p := s.productLocked(line.ProductID); p != nil {
					before := p.Stock
					p.Stock = addClamped(p.Stock, line.Quantity)
					s.stockChangedLocked(p, before)
				}
			}
		}

		s.appendAuditLocked(model.TargetOrder,
			fmt.Sprintf("Order %s status changed", o.ID),
			fmt.Sprintf("%s -> %s", previous, status))
		updated = o.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("order_id", id).Str("status", string(status)).Msg("status change rejected")
		return model.Order{}, err
	}

	s.logger.Info().Str("order_id", id).Str("status", string(status)).Msg("order status changed")
	return updated, nil
}

// Orders lists orders, newest last.
func (s *Store) Orders(filter model.OrderFilter) []model.Order {
	var out []model.Order
	s.view(func() {
		for _, o := range s.orders {
			if filter.UserID != "" && o.UserID != filter.UserID {
				continue
			}
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			out = append(out, o.Clone())
		}
	})
	return out
}

// Order returns a single order.
func (s *Store) Order(id string) (model.Order, error) {
	var (
		out model.Order
		err error
	)
	s.view(func() {
		o := s.orderLocked(id)
		if o == nil {
			err = model.ErrOrderNotFound
			return
		}
		out = o.Clone()
	})
	return out, err
}

func (s *Store) orderLocked(id string) *model.Order {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func validateCheckout(req model.CheckoutRequest) error {
	fields := make(map[string]string)
	for k, v := range validateAddress(req.Address) {
		fields["address."+k] = v
	}
	for k, v := range validatePayment(req.Payment) {
		fields["payment."+k] = v
	}
	if len(fields) > 0 {
		return model.NewValidationError(fields)
	}
	return nil
}

func validateAddress(a model.Address) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(a.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(a.Street) == "" {
		fields["street"] = "street is required"
	}
	if strings.TrimSpace(a.City) == "" {
		fields["city"] = "city is required"
	}
	if !zipCodePattern.MatchString(a.ZipCode) {
		fields["zipCode"] = "invalid postal code"
	}
	return fields
}

func validatePayment(p model.PaymentDetails) map[string]string {
	fields := make(map[string]string)
	if !cardPattern.MatchString(strings.ReplaceAll(p.CardNumber, " ", "")) {
		fields["cardNumber"] = "card number must have 16 digits"
	}
	if m := expiryPattern.FindStringSubmatch(p.Expiry); m == nil {
		fields["expiry"] = "expiry must be MM/YY"
	} else if month, _ := strconv.Atoi(m[1]); month < 1 || month > 12 {
		fields["expiry"] = "expiry month must be between 01 and 12"
	}
	if !cvvPattern.MatchString(p.CVV) {
		fields["cvv"] = "cvv must have 3 digits"
	}
	return fields
}
