package models

import (
	"github.com/shopspring/decimal"
)

// Collection is the whole set of purchases, in insertion order.
type Collection []Purchase

// Clone returns a deep copy. A nil collection clones to an empty one so it
// is always encoded as a JSON array.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, p := range c {
		out[i] = p.Clone()
	}
	return out
}

// Find returns the position of the purchase with the given id, or -1.
func (c Collection) Find(id string) int {
	for i, p := range c {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Summary aggregates the derived values of every purchase in a collection.
type Summary struct {
	Purchases      int             `json:"purchases" yaml:"purchases"`
	PaidOff        int             `json:"paidOff" yaml:"paidOff"`
	TotalValue     decimal.Decimal `json:"totalValue" yaml:"totalValue"`
	TotalAmortized decimal.Decimal `json:"totalAmortized" yaml:"totalAmortized"`
	TotalBalance   decimal.Decimal `json:"totalBalance" yaml:"totalBalance"`
}

// Summarize computes the Summary of c.
func (c Collection) Summarize() Summary {
	s := Summary{
		Purchases:      len(c),
		TotalValue:     decimal.Zero,
		TotalAmortized: decimal.Zero,
		TotalBalance:   decimal.Zero,
	}
	for _, p := range c {
		s.TotalValue = s.TotalValue.Add(p.TotalValue)
		s.TotalAmortized = s.TotalAmortized.Add(p.TotalAmortized())
		s.TotalBalance = s.TotalBalance.Add(p.CurrentBalance())
		if p.IsPaidOff() {
			s.PaidOff++
		}
	}
	return s
}
