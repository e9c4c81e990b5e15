package model

import "time"

// Category is one of the fixed catalogue sections.
type Category string

const (
	CategoryNecklaces Category = "Colares"
	CategoryEarrings  Category = "Brincos"
	CategoryBracelets Category = "Pulseiras"
	CategoryRings     Category = "Anéis"
	CategorySets      Category = "Conjuntos"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryNecklaces, CategoryEarrings, CategoryBracelets, CategoryRings, CategorySets}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Color is the plating finish of a piece.
type Color string

const (
	ColorGold   Color = "Dourado"
	ColorSilver Color = "Prateado"
	ColorRose   Color = "Rosé"
)

// Colors lists every valid color in display order.
var Colors = []Color{ColorGold, ColorSilver, ColorRose}

// Valid reports whether c is a known color.
func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a piece in the catalogue.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     Category  `json:"category"`
	Color        Color     `json:"color"`
	Price        Money     `json:"price"`
	Stock        int       `json:"stock"`
	Images       []string  `json:"images"`
	Videos       []string  `json:"videos,omitempty"`
	Rating       float64   `json:"rating"`
	IsNew        bool      `json:"isNew"`
	IsBestSeller bool      `json:"isBestSeller"`
	Description  string    `json:"description"`
	Reviews      []Review  `json:"reviews"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the product.
func (p Product) Clone() Product {
	p.Images = append([]string(nil), p.Images...)
	p.Videos = append([]string(nil), p.Videos...)
	p.Reviews = append([]Review(nil), p.Reviews...)
	return p
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	Color        Color    `json:"color"`
	Price        Money    `json:"price"`
	Stock        int      `json:"stock"`
	Images       []string `json:"images"`
	Videos       []string `json:"videos,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	IsNew        *bool    `json:"isNew,omitempty"`
	IsBestSeller bool     `json:"isBestSeller"`
	Description  string   `json:"description"`
}

// ProductSort names a catalogue ordering.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price-asc"
	SortPriceDesc ProductSort = "price-desc"
	SortRating    ProductSort = "rating"
)

// ProductFilter narrows a catalogue listing. Zero values mean "any".
type ProductFilter struct {
	Category Category
	Color    Color
	Query    string
	Sort     ProductSort
}

// Review is a visitor's rating of a product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId,omitempty"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}

// ReviewInput is the payload of a new review.
type ReviewInput struct {
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}
