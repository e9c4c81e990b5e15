package model

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Money is an amount in euros kept at two decimal places.
type Money struct {
	decimal.Decimal
}

// NewMoney builds a Money from a whole number of cents.
func NewMoney(cents int64) Money {
	return Money{Decimal: decimal.New(cents, -2)}
}

// NewMoneyFromDecimal rounds the amount to cents.
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// ParseMoney parses a decimal string such as "12.90".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoneyFromDecimal(d), nil
}

// MustMoney parses s and panics on malformed input. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return NewMoneyFromDecimal(m.Decimal.Add(o.Decimal))
}

// Times returns m multiplied by a quantity.
func (m Money) Times(qty int) Money {
	return NewMoneyFromDecimal(m.Decimal.Mul(decimal.NewFromInt(int64(qty))))
}

// WholeUnits returns the amount in whole euros, rounded down. Amounts beyond
// the int range saturate.
func (m Money) WholeUnits() int {
	whole := m.Decimal.Floor()
	switch {
	case whole.GreaterThan(decimal.NewFromInt(math.MaxInt)):
		return math.MaxInt
	case whole.LessThan(decimal.NewFromInt(math.MinInt)):
		return math.MinInt
	}
	return int(whole.IntPart())
}

// MarshalJSON always writes a two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON accepts either a string or a number.
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// String returns the two-decimal representation.
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
