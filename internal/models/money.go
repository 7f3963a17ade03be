package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted as JSON numbers, never as quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

// NewAmountFromString parses a plain decimal amount such as "1200.50".
func NewAmountFromString(amount string) (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", amount, err)
	}
	return dec, nil
}

// MustAmount is NewAmountFromString for literals known to be valid.
func MustAmount(amount string) decimal.Decimal {
	dec, err := NewAmountFromString(amount)
	if err != nil {
		panic(err)
	}
	return dec
}
