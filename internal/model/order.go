package model

import "time"

// OrderStatus is a state of the order lifecycle.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pendente"
	OrderProcessing OrderStatus = "Processando"
	OrderShipped    OrderStatus = "Enviado"
	OrderDelivered  OrderStatus = "Entregue"
	OrderCancelled  OrderStatus = "Cancelado"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case OrderCancelled:
		return true
	case OrderShipped:
		return s == OrderPending || s == OrderProcessing
	case OrderDelivered:
		return s == OrderShipped
	}
	return false
}

// GuestUserID owns orders placed without a session.
const GuestUserID = "anonymous"

// Order is an immutable record of a completed checkout. Only Status changes.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderLine `json:"items"`
	Subtotal        Money       `json:"subtotal"`
	Shipping        Money       `json:"shipping"`
	GiftFee         Money       `json:"giftFee"`
	Total           Money       `json:"total"`
	PointsAwarded   int         `json:"pointsAwarded"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"date"`
	Address         Address     `json:"address"`
	IsGift          bool        `json:"isGift"`
	LuxuryPackaging bool        `json:"luxuryPackaging"`
	GiftMessage     string      `json:"giftMessage,omitempty"`
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	o.Items = append([]OrderLine(nil), o.Items...)
	return o
}

// OrderLine is a purchased product with its price frozen at checkout.
type OrderLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	UnitPrice Money  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// GiftOptions are the optional wrapping choices of a checkout.
type GiftOptions struct {
	IsGift          bool   `json:"isGift"`
	LuxuryPackaging bool   `json:"luxuryPackaging"`
	GiftMessage     string `json:"giftMessage,omitempty"`
}

// PaymentDetails are validated for shape only; nothing is charged.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// CheckoutRequest is the input of PlaceOrder.
type CheckoutRequest struct {
	Address Address        `json:"address"`
	Gift    GiftOptions    `json:"gift"`
	Payment PaymentDetails `json:"payment"`
}

// OrderFilter narrows order listings. Zero values mean "any".
type OrderFilter struct {
	UserID string
	Status OrderStatus
}

// CartItem is a held quantity of a product.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartLine is a cart item joined with the current catalogue data.
type CartLine struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
	UnitPrice Money    `json:"unitPrice"`
	LineTotal Money    `json:"lineTotal"`
}

// Quote is the price breakdown shared by the cart view and the order ledger.
type Quote struct {
	Subtotal Money `json:"subtotal"`
	Shipping Money `json:"shipping"`
	GiftFee  Money `json:"giftFee"`
	Total    Money `json:"total"`
}

// CartView is the cart as presented to a shopper.
type CartView struct {
	Lines []CartLine `json:"lines"`
	Quote Quote      `json:"quote"`
	Count int        `json:"count"`
}
