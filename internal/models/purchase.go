package models

import (
	"github.com/shopspring/decimal"
)

// Amortization is an extra, out-of-schedule payment that reduces the
// outstanding balance of the purchase that owns it.
type Amortization struct {
	ID     string          `json:"id" yaml:"id"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Date   Date            `json:"date" yaml:"date"`
}

// Purchase is an acquisition paid in installments. Amortizations are kept in
// insertion order and are owned exclusively by the purchase.
type Purchase struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	TotalValue    decimal.Decimal `json:"totalValue" yaml:"totalValue"`
	Installments  int             `json:"installments" yaml:"installments"`
	StartDate     Date            `json:"startDate" yaml:"startDate"`
	ReceiptURL    string          `json:"receiptUrl,omitempty" yaml:"receiptUrl,omitempty"`
	Amortizations []Amortization  `json:"amortizations" yaml:"amortizations"`
}

// PurchaseFields holds the user-editable fields of a Purchase.
type PurchaseFields struct {
	Name         string
	TotalValue   decimal.Decimal
	Installments int
	StartDate    Date
	ReceiptURL   string
}

// Fields returns the editable fields of p.
func (p Purchase) Fields() PurchaseFields {
	return PurchaseFields{
		Name:         p.Name,
		TotalValue:   p.TotalValue,
		Installments: p.Installments,
		StartDate:    p.StartDate,
		ReceiptURL:   p.ReceiptURL,
	}
}

// Apply replaces the editable fields of p, leaving ID and amortizations alone.
func (p *Purchase) Apply(f PurchaseFields) {
	p.Name = f.Name
	p.TotalValue = f.TotalValue
	p.Installments = f.Installments
	p.StartDate = f.StartDate
	p.ReceiptURL = f.ReceiptURL
}

// Clone returns a deep copy of p.
func (p Purchase) Clone() Purchase {
	out := p
	out.Amortizations = make([]Amortization, len(p.Amortizations))
	copy(out.Amortizations, p.Amortizations)
	return out
}

// FindAmortization returns the position of the amortization with the given
// id, or -1.
func (p Purchase) FindAmortization(id string) int {
	for i, a := range p.Amortizations {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// TotalAmortized is the sum of all amortization amounts.
func (p Purchase) TotalAmortized() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Amortizations {
		total = total.Add(a.Amount)
	}
	return total
}

// CurrentBalance is the outstanding amount, floored at zero.
func (p Purchase) CurrentBalance() decimal.Decimal {
	balance := p.TotalValue.Sub(p.TotalAmortized())
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// EstimatedInstallment is the static average installment
// totalValue / installments. It does not shrink as amortizations accrue.
func (p Purchase) EstimatedInstallment() decimal.Decimal {
	if p.Installments <= 0 {
		return decimal.Zero
	}
	return p.TotalValue.Div(decimal.NewFromInt(int64(p.Installments)))
}

// ProgressPercentage is 100 * totalAmortized / totalValue. The value is not
// clamped and exceeds 100 when the purchase is over-amortized.
func (p Purchase) ProgressPercentage() decimal.Decimal {
	if !p.TotalValue.IsPositive() {
		return decimal.Zero
	}
	return p.TotalAmortized().Mul(hundred).Div(p.TotalValue)
}

// DisplayProgress is ProgressPercentage clamped to [0, 100] for progress bars.
func (p Purchase) DisplayProgress() decimal.Decimal {
	progress := p.ProgressPercentage()
	if progress.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(progress, hundred)
}

// IsPaidOff reports whether nothing is left to pay.
func (p Purchase) IsPaidOff() bool {
	return p.TotalValue.IsPositive() && p.CurrentBalance().IsZero()
}
