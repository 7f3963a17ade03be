// Package currencyutils parses amounts typed by users and formats amounts
// for display.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyMarks  = regexp.MustCompile(`R\$|BRL|CHF|[€$£¥\s]`)
	realMarks      = regexp.MustCompile(`R\$|BRL`)
	thousandsGroup = regexp.MustCompile(`^-?\d{1,3}\.\d{3}$`)
)

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles "1.234,56", "1,234.56", "1234,56", "R$ 1.234,56" and friends.
// An empty string parses to zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts various currency string formats to a form that
// decimal.NewFromString accepts.
//
// With a real mark ("R$", "BRL") a lone dot followed by three digits is a
// thousands separator, so "R$ 1.200" is 1200.
func StandardizeAmount(amountStr string) string {
	brazilian := realMarks.MatchString(amountStr)
	amountStr = currencyMarks.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = parts[0] + "." + parts[1]
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasDot && brazilian && thousandsGroup.MatchString(amountStr):
		amountStr = strings.ReplaceAll(amountStr, ".", "")
	case hasDot && strings.Count(amountStr, ".") > 1:
		// 1.234.567
		amountStr = strings.ReplaceAll(amountStr, ".", "")
	}

	return amountStr
}

// FormatAmount formats a decimal amount with two decimal places for the
// given currency. BRL uses the Brazilian convention "R$ 1.234,56"; other
// currencies keep a plain "CODE 1234.56".
func FormatAmount(amount decimal.Decimal, currency string) string {
	switch strings.ToUpper(currency) {
	case "BRL":
		return "R$ " + groupBrazilian(amount.StringFixed(2))
	case "":
		return amount.StringFixed(2)
	case "EUR":
		return "€" + amount.StringFixed(2)
	case "USD":
		return "$" + amount.StringFixed(2)
	default:
		return currency + " " + amount.StringFixed(2)
	}
}

// FormatPercent renders a percentage with two decimals, e.g. "16.67%".
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

func groupBrazilian(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "," + fracPart
}
