package store

import "aura-bijoux/internal/model"

var (
	// FreeShippingThreshold is the subtotal from which shipping is free.
	FreeShippingThreshold = model.NewMoney(5000)
	// ShippingFee applies below FreeShippingThreshold.
	ShippingFee = model.NewMoney(590)
	// LuxuryPackagingFee applies when premium gift wrapping is requested.
	LuxuryPackagingFee = model.NewMoney(200)
)

// ShippingFor returns the shipping charged for a subtotal.
func ShippingFor(subtotal model.Money) model.Money {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold.Decimal) {
		return model.NewMoney(0)
	}
	return ShippingFee
}

// QuoteOrder prices lines: total = subtotal + shipping + gift fee. An empty
// set of lines costs nothing.
func QuoteOrder(lines []model.OrderLine, luxuryPackaging bool) model.Quote {
	if len(lines) == 0 {
		zero := model.NewMoney(0)
		return model.Quote{Subtotal: zero, Shipping: zero, GiftFee: zero, Total: zero}
	}
	subtotal := model.NewMoney(0)
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Times(l.Quantity))
	}
	q := model.Quote{
		Subtotal: subtotal,
		Shipping: ShippingFor(subtotal),
		GiftFee:  model.NewMoney(0),
	}
	if luxuryPackaging {
		q.GiftFee = LuxuryPackagingFee
	}
	q.Total = q.Subtotal.Add(q.Shipping).Add(q.GiftFee)
	return q
}

// PointsFor is the loyalty credit of an order total: whole euros, rounded down.
func PointsFor(total model.Money) int {
	return total.WholeUnits()
}
