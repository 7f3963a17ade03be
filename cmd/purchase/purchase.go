// Package purchase implements the purchase add, edit, delete, list and show
// commands.
package purchase

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"parcelas/cmd/common"
	"parcelas/cmd/root"
	"parcelas/internal/currencyutils"
	"parcelas/internal/models"
)

const progressWidth = 20

// Cmd represents the purchase command
var Cmd = NewCmd()

// NewCmd builds the purchase command tree.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "purchase",
		Aliases: []string{"compra"},
		Short:   "Manage installment purchases",
		Long: `Create, edit, delete and inspect purchases paid in installments.

Amounts accept 1234.56, 1.234,56 or R$ 1.234,56. Dates accept
YYYY-MM-DD or DD/MM/YYYY and default to today.`,
	}
	cmd.AddCommand(newAddCmd(), newEditCmd(), newDeleteCmd(), newListCmd(), newShowCmd())
	return cmd
}

type fieldFlags struct {
	name         string
	total        string
	installments int
	start        string
	receipt      string
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Purchase name")
	cmd.Flags().StringVarP(&f.total, "total", "t", "", "Total value of the purchase")
	cmd.Flags().IntVarP(&f.installments, "installments", "i", 1, "Number of installments")
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "Date of the first installment (default today)")
	cmd.Flags().StringVarP(&f.receipt, "receipt", "r", "", "Link to the receipt or invoice")
}

// parseTotal returns zero for an empty value so the ledger reports the
// missing total as a validation error.
func parseTotal(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	total, err := common.ParseAmount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid total value '%s': %w", s, err)
	}
	return total, nil
}

func newAddCmd() *cobra.Command {
	flags := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new purchase",
		Args:  cobra.NoArgs,
		Example: `  parcelas purchase add --name Notebook --total 1200 --installments 12 --start 2024-01-10
  parcelas purchase add -n "Geladeira" -t "3.500,00" -i 10 -r https://example.com/nota.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := parseTotal(flags.total)
			if err != nil {
				return err
			}
			start, err := common.ParseDate(flags.start)
			if err != nil {
				return err
			}

			p, err := root.Ledger().CreatePurchase(models.PurchaseFields{
				Name:         strings.TrimSpace(flags.name),
				TotalValue:   total,
				Installments: flags.installments,
				StartDate:    start,
				ReceiptURL:   strings.TrimSpace(flags.receipt),
			})
			if err != nil {
				return root.Fail(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Purchase created: %s\n", p.ID)
			printCard(out, root.Formatter(), p)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditCmd() *cobra.Command {
	flags := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "edit <purchase-id>",
		Short: "Change the fields of a purchase",
		Long:  "Change the fields of a purchase. Flags that are not given keep their current value; amortizations are not affected.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := root.Ledger()
			current, err := l.Purchase(args[0])
			if err != nil {
				return root.Fail(err)
			}

			fields := current.Fields()
			changed := cmd.Flags().Changed
			if changed("name") {
				fields.Name = strings.TrimSpace(flags.name)
			}
			if changed("total") {
				if fields.TotalValue, err = parseTotal(flags.total); err != nil {
					return err
				}
			}
			if changed("installments") {
				fields.Installments = flags.installments
			}
			if changed("start") {
				if fields.StartDate, err = common.ParseDate(flags.start); err != nil {
					return err
				}
			}
			if changed("receipt") {
				fields.ReceiptURL = strings.TrimSpace(flags.receipt)
			}

			p, err := l.UpdatePurchase(current.ID, fields)
			if err != nil {
				return root.Fail(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Purchase updated")
			printCard(out, root.Formatter(), p)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <purchase-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a purchase and all of its amortizations",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := root.Ledger()
			out := cmd.OutOrStdout()

			p, err := l.Purchase(args[0])
			if err != nil {
				fmt.Fprintf(out, "Nothing to delete: no purchase with id %s\n", args[0])
				return nil
			}

			if !yes {
				prompt := fmt.Sprintf("Delete purchase %q and its %d amortization(s)?", p.Name, len(p.Amortizations))
				if !common.Confirm(cmd.InOrStdin(), out, prompt) {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if err := l.DeletePurchase(p.ID); err != nil {
				return root.Fail(err)
			}
			fmt.Fprintln(out, "Purchase deleted")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List purchases with balance and progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			purchases := root.Ledger().Purchases()
			if len(purchases) == 0 {
				fmt.Fprintln(out, "No purchases yet. Use 'parcelas purchase add' to record one.")
				return nil
			}

			f := root.Formatter()
			for _, p := range purchases {
				printCard(out, f, p)
				fmt.Fprintln(out)
			}

			s := purchases.Summarize()
			fmt.Fprintf(out, "%d purchase(s), %d paid off. Outstanding %s of %s.\n",
				s.Purchases, s.PaidOff, f.Money(s.TotalBalance), f.Money(s.TotalValue))
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <purchase-id>",
		Short: "Show a purchase and its amortization history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := root.Ledger().Purchase(args[0])
			if err != nil {
				return root.Fail(err)
			}

			out := cmd.OutOrStdout()
			f := root.Formatter()
			printCard(out, f, p)
			if p.ReceiptURL != "" {
				fmt.Fprintf(out, "  Receipt:     %s\n", p.ReceiptURL)
			}

			fmt.Fprintln(out)
			if len(p.Amortizations) == 0 {
				fmt.Fprintln(out, "No amortizations recorded.")
				return nil
			}
			printAmortizations(out, f, p.Amortizations)
			return nil
		},
	}
}

// printCard writes the summary block of one purchase. Only the bar is
// clamped; the percentage shows how far past the total a purchase went.
func printCard(out io.Writer, f common.Formatter, p models.Purchase) {
	fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(out, "  Balance:     %s\n", f.Money(p.CurrentBalance()))
	fmt.Fprintf(out, "  Installment: %dx %s from %s\n", p.Installments, f.Money(p.EstimatedInstallment()), f.Date(p.StartDate))
	fmt.Fprintf(out, "  Progress:    %s %s\n", common.ProgressBar(p.DisplayProgress(), progressWidth), currencyutils.FormatPercent(p.ProgressPercentage()))
	fmt.Fprintf(out, "  Paid:        %s of %s\n", f.Money(p.TotalAmortized()), f.Money(p.TotalValue))
}

func printAmortizations(out io.Writer, f common.Formatter, amortizations []models.Amortization) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tAMOUNT")
	for _, a := range amortizations {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, f.Date(a.Date), f.Money(a.Amount))
	}
	w.Flush()
}
