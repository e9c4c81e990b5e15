package store

import (
	"fmt"
	"sort"
	"strings"

	"aura-bijoux/internal/model"

	"github.com/shopspring/decimal"
)

const (
	placeholderImage   = "https://via.placeholder.com/600x800"
	defaultDescription = "Descrição da peça Aura Bijoux."
	defaultRating      = 5.0
)

// IsCritical reports whether a product is at or below the stock-alert threshold.
func IsCritical(p model.Product, threshold int) bool {
	return p.Stock <= threshold
}

// EffectivePrice is the unit price a shopper pays right now: the list price,
// discounted when sale mode is on.
func EffectivePrice(p model.Product, settings model.SiteSettings) model.Money {
	if !settings.SaleMode || settings.DiscountPercent <= 0 {
		return p.Price
	}
	factor := decimal.NewFromInt(int64(100 - settings.DiscountPercent)).Div(decimal.NewFromInt(100))
	return model.NewMoneyFromDecimal(p.Price.Decimal.Mul(factor))
}

// Products lists the catalogue, filtered and sorted.
func (s *Store) Products(filter model.ProductFilter) []model.Product {
	var out []model.Product
	s.view(func() {
		query := strings.ToLower(strings.TrimSpace(filter.Query))
		for _, p := range s.products {
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			if filter.Color != "" && p.Color != filter.Color {
				continue
			}
			if query != "" &&
				!strings.Contains(strings.ToLower(p.Name), query) &&
				!strings.Contains(strings.ToLower(p.Description), query) {
				continue
			}
			out = append(out, p.Clone())
		}
	})

	switch filter.Sort {
	case model.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price.Decimal) })
	case model.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price.Decimal) })
	case model.SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// Product returns a single product.
func (s *Store) Product(id string) (model.Product, error) {
	var (
		out model.Product
		err error
	)
	s.view(func() {
		p := s.productLocked(id)
		if p == nil {
			err = model.ErrProductNotFound
			return
		}
		out = p.Clone()
	})
	return out, err
}

// CriticalProducts lists products at or below the configured stock-alert threshold.
func (s *Store) CriticalProducts() []model.Product {
	var out []model.Product
	s.view(func() {
		for _, p := range s.products {
			if IsCritical(*p, s.settings.StockAlertThreshold) {
				out = append(out, p.Clone())
			}
		}
	})
	return out
}

// CreateProduct adds a product to the catalogue.
func (s *Store) CreateProduct(input model.ProductInput) (model.Product, error) {
	var created model.Product
	err := s.update(func() error {
		if err := validateProductInput(input); err != nil {
			return err
		}

		p := &model.Product{
			ID:        s.ids.NewID("PRD"),
			IsNew:     true,
			Rating:    defaultRating,
			Reviews:   []model.Review{},
			CreatedAt: s.now(),
		}
		applyProductInput(p, input)
		s.products = append(s.products, p)

		s.appendAuditLocked(model.TargetProduct,
			fmt.Sprintf("Product created: %q", p.Name),
			fmt.Sprintf("ID: %s | Price: %s | Stock: %d", p.ID, p.Price, p.Stock))
		created = p.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("product creation rejected")
		return model.Product{}, err
	}

	s.logger.Info().Str("product_id", created.ID).Msg("product created")
	return created, nil
}

// UpdateProduct replaces the editable fields of a product. Reviews, creation
// time and, unless supplied, rating and the new flag are preserved.
func (s *Store) UpdateProduct(id string, input model.ProductInput) (model.Product, error) {
	var updated model.Product
	err := s.update(func() error {
		p := s.productLocked(id)
		if p == nil {
			return model.ErrProductNotFound
		}
		if err := validateProductInput(input); err != nil {
			return err
		}

		previousStock := p.Stock
		applyProductInput(p, input)
		s.stockChangedLocked(p, previousStock)

		s.appendAuditLocked(model.TargetProduct,
			fmt.Sprintf("Product updated: %q", p.Name),
			fmt.Sprintf("ID: %s | Price: %s | Stock: %d", p.ID, p.Price, p.Stock))
		updated = p.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product update rejected")
		return model.Product{}, err
	}
	return updated, nil
}

// DeleteProduct removes a product and drops it from the cart and wishlists.
// Social tags and restock requests keep the dangling id.
func (s *Store) DeleteProduct(id string) error {
	err := s.update(func() error {
		idx := s.productIndexLocked(id)
		if idx < 0 {
			return model.ErrProductNotFound
		}
		p := s.products[idx]
		s.products = append(s.products[:idx], s.products[idx+1:]...)

		s.cart = removeCartItem(s.cart, id)
		s.guestWishlist = removeString(s.guestWishlist, id)
		for _, u := range s.users {
			u.Wishlist = removeString(u.Wishlist, id)
		}

		s.appendAuditLocked(model.TargetProduct,
			fmt.Sprintf("Product deleted: %q", p.Name),
			fmt.Sprintf("ID: %s", p.ID))
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product deletion rejected")
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// AdjustStock adds delta to the stock, never going below zero.
func (s *Store) AdjustStock(id string, delta int) (model.Product, error) {
	var adjusted model.Product
	err := s.update(func() error {
		p := s.productLocked(id)
		if p == nil {
			return model.ErrProductNotFound
		}

		previous := p.Stock
		p.Stock = max(0, addClamped(previous, delta))
		s.stockChangedLocked(p, previous)

		s.appendAuditLocked(model.TargetProduct,
			fmt.Sprintf("Stock adjusted: %+d units of %q", delta, p.Name),
			fmt.Sprintf("Previous stock: %d | New stock: %d", previous, p.Stock))
		adjusted = p.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Int("delta", delta).Msg("stock adjustment rejected")
		return model.Product{}, err
	}

	s.logger.Info().
		Str("product_id", id).
		Int("delta", delta).
		Int("stock", adjusted.Stock).
		Msg("stock adjusted")
	return adjusted, nil
}

// stockChangedLocked must follow every stock mutation.
func (s *Store) stockChangedLocked(p *model.Product, previous int) {
	if previous == 0 && p.Stock > 0 {
		s.notifyRestockLocked(p)
	}
}

func (s *Store) productLocked(id string) *model.Product {
	if idx := s.productIndexLocked(id); idx >= 0 {
		return s.products[idx]
	}
	return nil
}

func (s *Store) productIndexLocked(id string) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func validateProductInput(input model.ProductInput) error {
	fields := make(map[string]string)
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if !input.Category.Valid() {
		fields["category"] = fmt.Sprintf("unknown category %q", input.Category)
	}
	if !input.Color.Valid() {
		fields["color"] = fmt.Sprintf("unknown color %q", input.Color)
	}
	if input.Price.IsNegative() {
		fields["price"] = "price must not be negative"
	}
	if input.Stock < 0 {
		fields["stock"] = "stock must be a non-negative integer"
	}
	if input.Rating != nil && (*input.Rating < 0 || *input.Rating > 5) {
		fields["rating"] = "rating must be between 0 and 5"
	}
	if len(fields) > 0 {
		return model.NewValidationError(fields)
	}
	return nil
}

func validateSeedProduct(p model.Product) error {
	input := model.ProductInput{
		Name:     p.Name,
		Category: p.Category,
		Color:    p.Color,
		Price:    p.Price,
		Stock:    p.Stock,
		Rating:   &p.Rating,
	}
	return validateProductInput(input)
}

func applyProductInput(p *model.Product, input model.ProductInput) {
	p.Name = strings.TrimSpace(input.Name)
	p.Category = input.Category
	p.Color = input.Color
	p.Price = input.Price
	p.Stock = input.Stock
	p.Images = append([]string(nil), input.Images...)
	if len(p.Images) == 0 {
		p.Images = []string{placeholderImage}
	}
	p.Videos = append([]string(nil), input.Videos...)
	p.IsBestSeller = input.IsBestSeller
	p.Description = strings.TrimSpace(input.Description)
	if p.Description == "" {
		p.Description = defaultDescription
	}
	if input.Rating != nil {
		p.Rating = *input.Rating
	}
	if input.IsNew != nil {
		p.IsNew = *input.IsNew
	}
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
