package store

import (
	"aura-bijoux/internal/model"
)

// AddToCart holds qty units of a product. An existing line grows up to the
// available stock; a new line starts at min(max(qty, 1), stock). Products
// with no stock are rejected.
func (s *Store) AddToCart(productID string, qty int) (model.CartItem, error) {
	var line model.CartItem
	err := s.update(func() error {
		p := s.productLocked(productID)
		if p == nil {
			return model.ErrProductNotFound
		}
		requested := max(qty, 1)
		if p.Stock == 0 {
			return model.NewStockExceededError([]model.StockShortfall{
				{ProductID: p.ID, Requested: requested, Available: 0},
			})
		}

		for i := range s.cart {
			if s.cart[i].ProductID == productID {
				s.cart[i].Quantity = min(addClamped(s.cart[i].Quantity, requested), p.Stock)
				line = s.cart[i]
				return nil
			}
		}

		line = model.CartItem{ProductID: productID, Quantity: min(requested, p.Stock)}
		s.cart = append(s.cart, line)
		return nil
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("product_id", productID).Int("quantity", qty).Msg("add to cart rejected")
		return model.CartItem{}, err
	}
	return line, nil
}

// UpdateQuantity sets a line's quantity clamped into [1, stock]. Out-of-range
// requests are not errors; compare the returned quantity with the request to
// detect truncation.
func (s *Store) UpdateQuantity(productID string, qty int) (model.CartItem, error) {
	var line model.CartItem
	err := s.update(func() error {
		idx := cartIndex(s.cart, productID)
		if idx < 0 {
			return model.ErrCartItemNotFound
		}
		stock := 0
		if p := s.productLocked(productID); p != nil {
			stock = p.Stock
		}
		s.cart[idx].Quantity = ClampQuantity(qty, stock)
		line = s.cart[idx]
		return nil
	})
	if err != nil {
		return model.CartItem{}, err
	}
	return line, nil
}

// ClampQuantity returns max(1, min(requested, stock)).
func ClampQuantity(requested, stock int) int {
	return max(1, min(requested, stock))
}

// RemoveFromCart drops a line. Removing an absent line is a no-op.
func (s *Store) RemoveFromCart(productID string) {
	_ = s.update(func() error {
		s.cart = removeCartItem(s.cart, productID)
		return nil
	})
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	_ = s.update(func() error {
		s.cart = nil
		return nil
	})
}

// Cart returns the cart joined with current catalogue data and priced.
func (s *Store) Cart() model.CartView {
	var view model.CartView
	s.view(func() {
		view = s.cartViewLocked()
	})
	return view
}

func (s *Store) cartViewLocked() model.CartView {
	view := model.CartView{Lines: make([]model.CartLine, 0, len(s.cart))}
	priced := make([]model.OrderLine, 0, len(s.cart))
	for _, item := range s.cart {
		line := model.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		if p := s.productLocked(item.ProductID); p != nil {
			c := p.Clone()
			line.Product = &c
			line.UnitPrice = EffectivePrice(*p, s.settings)
			line.LineTotal = line.UnitPrice.Times(item.Quantity)
			priced = append(priced, model.OrderLine{UnitPrice: line.UnitPrice, Quantity: item.Quantity})
		}
		view.Lines = append(view.Lines, line)
		view.Count += item.Quantity
	}
	view.Quote = QuoteOrder(priced, false)
	return view
}

func cartIndex(cart []model.CartItem, productID string) int {
	for i, item := range cart {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func removeCartItem(cart []model.CartItem, productID string) []model.CartItem {
	idx := cartIndex(cart, productID)
	if idx < 0 {
		return cart
	}
	return append(cart[:idx], cart[idx+1:]...)
}
