// Package common contains shared functionality for command handlers:
// parsing user input, formatting values for display and turning ledger
// errors into messages.
package common

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"parcelas/internal/currencyutils"
	"parcelas/internal/dateutils"
	"parcelas/internal/ledgererror"
	"parcelas/internal/models"
)

// ParseAmount reads a user-entered amount such as "1.234,56" or "R$ 200".
func ParseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	return currencyutils.ParseAmount(s)
}

// ParseDate reads a user-entered date in any of the accepted layouts. An
// empty value means today.
func ParseDate(s string) (models.Date, error) {
	if strings.TrimSpace(s) == "" {
		return models.Today(), nil
	}
	t, _, err := dateutils.ParseDate(s)
	if err != nil {
		return models.Date{}, err
	}
	return models.DateOf(t), nil
}

// Formatter renders amounts and dates for the terminal.
type Formatter struct {
	Currency   string
	DateLayout string
}

// NewFormatter builds a Formatter from the display settings.
func NewFormatter(currency, datePattern string) Formatter {
	return Formatter{Currency: currency, DateLayout: dateutils.LayoutFor(datePattern)}
}

// Money formats an amount in the display currency.
func (f Formatter) Money(amount decimal.Decimal) string {
	return currencyutils.FormatAmount(amount, f.Currency)
}

// Date formats d, or "-" when it is not set.
func (f Formatter) Date(d models.Date) string {
	if d.IsZero() {
		return "-"
	}
	return dateutils.FormatDate(d.Time, f.DateLayout)
}

// ProgressBar draws pct (already clamped to [0,100]) as a bar of width cells.
func ProgressBar(pct decimal.Decimal, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).IntPart())
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

var fieldMessages = map[string]string{
	ledgererror.FieldName:         "Name is required",
	ledgererror.FieldTotalValue:   "Total value must be greater than zero",
	ledgererror.FieldInstallments: "Installments must be at least 1",
	ledgererror.FieldAmount:       "Amount must be greater than zero",
}

// UserMessage turns an error returned by the ledger into the message shown
// to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ledgererror.ValidationError
	var notFoundErr *ledgererror.NotFoundError
	var importErr *ledgererror.ImportError
	var corruptErr *ledgererror.CorruptStateError

	switch {
	case errors.As(err, &validationErr):
		if msg, ok := fieldMessages[validationErr.Field]; ok {
			return msg
		}
		return validationErr.Error()
	case errors.As(err, &notFoundErr):
		return fmt.Sprintf("Operation failed: %s", notFoundErr.Error())
	case errors.As(err, &importErr):
		return "Invalid backup file: expected a JSON list of purchases"
	case errors.As(err, &corruptErr):
		return "Saved data could not be read and was ignored"
	default:
		return fmt.Sprintf("Operation failed: %v", err)
	}
}

// Confirm asks prompt on out and reads a yes/no answer from in. Anything
// but "y" or "yes" is a no.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "sim":
		return true
	default:
		return false
	}
}
