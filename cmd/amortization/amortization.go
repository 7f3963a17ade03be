// Package amortization implements the commands that register and correct
// extra payments against a purchase.
package amortization

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"parcelas/cmd/common"
	"parcelas/cmd/root"
)

// Cmd represents the amortization command
var Cmd = NewCmd()

// NewCmd builds the amortization command tree.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "amortization",
		Aliases: []string{"amortizacao", "pay"},
		Short:   "Register extra payments against a purchase",
		Long: `Register and correct amortizations: extra, out-of-schedule payments that
reduce the outstanding balance of a purchase. Amortizations are removed only
together with their purchase.`,
	}
	cmd.AddCommand(newAddCmd(), newEditCmd())
	return cmd
}

// parseAmount returns zero for an empty value so the ledger decides how a
// missing amount is reported.
func parseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	amount, err := common.ParseAmount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount '%s': %w", s, err)
	}
	return amount, nil
}

func newAddCmd() *cobra.Command {
	var amount, date string
	cmd := &cobra.Command{
		Use:     "add <purchase-id>",
		Short:   "Add an amortization to a purchase",
		Args:    cobra.ExactArgs(1),
		Example: `  parcelas amortization add 3f2a... --amount 200 --date 2024-02-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			when, err := common.ParseDate(date)
			if err != nil {
				return err
			}

			l := root.Ledger()
			a, err := l.AddAmortization(args[0], value, when)
			if err != nil {
				return root.Fail(err)
			}

			p, err := l.Purchase(args[0])
			if err != nil {
				return root.Fail(err)
			}
			f := root.Formatter()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Amortization added: %s (%s on %s)\n", a.ID, f.Money(a.Amount), f.Date(a.Date))
			fmt.Fprintf(out, "Remaining balance of %s: %s\n", p.Name, f.Money(p.CurrentBalance()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount paid")
	cmd.Flags().StringVarP(&date, "date", "t", "", "Payment date (default today)")
	return cmd
}

func newEditCmd() *cobra.Command {
	var amount, date string
	cmd := &cobra.Command{
		Use:   "edit <purchase-id> <amortization-id>",
		Short: "Correct the amount or date of an amortization",
		Long:  "Correct the amount or date of an amortization. Flags that are not given keep their current value.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := root.Ledger()
			current, err := l.Amortization(args[0], args[1])
			if err != nil {
				return root.Fail(err)
			}

			value, when := current.Amount, current.Date
			if cmd.Flags().Changed("amount") {
				if value, err = parseAmount(amount); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("date") {
				if when, err = common.ParseDate(date); err != nil {
					return err
				}
			}

			a, err := l.UpdateAmortization(args[0], args[1], value, when)
			if err != nil {
				return root.Fail(err)
			}
			f := root.Formatter()
			fmt.Fprintf(cmd.OutOrStdout(), "Amortization updated: %s (%s on %s)\n", a.ID, f.Money(a.Amount), f.Date(a.Date))
			return nil
		},
	}
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount paid")
	cmd.Flags().StringVarP(&date, "date", "t", "", "Payment date")
	return cmd
}
