package model

import (
	"github.com/shopspring/decimal"
)

// Money is an exact monetary amount: a 3-letter currency code plus a
// decimal value. Amounts are never represented as binary floats.
type Money struct {
	Currency string
	Value    decimal.Decimal
}

// MoneyFromString parses a wire-format amount string
func MoneyFromString(currency string, value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{Currency: currency, Value: d}, nil
}

// Equal compares by numeric value, not string representation,
// so "250.00" and "250.000" are the same amount
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Value.Equal(other.Value)
}
