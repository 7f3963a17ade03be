// Package report renders summaries of the purchase collection as json, yaml
// or csv.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"parcelas/internal/logging"
	"parcelas/internal/models"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Formats lists the supported report formats.
var Formats = []string{FormatJSON, FormatYAML, FormatCSV}

// Row is the report line of one purchase. Amounts are fixed to two decimals.
type Row struct {
	ID                   string      `json:"id" yaml:"id" csv:"id"`
	Name                 string      `json:"name" yaml:"name" csv:"name"`
	StartDate            models.Date `json:"startDate" yaml:"startDate" csv:"start_date"`
	Installments         int         `json:"installments" yaml:"installments" csv:"installments"`
	TotalValue           string      `json:"totalValue" yaml:"totalValue" csv:"total_value"`
	EstimatedInstallment string      `json:"estimatedInstallment" yaml:"estimatedInstallment" csv:"estimated_installment"`
	TotalAmortized       string      `json:"totalAmortized" yaml:"totalAmortized" csv:"total_amortized"`
	CurrentBalance       string      `json:"currentBalance" yaml:"currentBalance" csv:"current_balance"`
	Progress             string      `json:"progress" yaml:"progress" csv:"progress"`
	Amortizations        int         `json:"amortizations" yaml:"amortizations" csv:"amortizations"`
	ReceiptURL           string      `json:"receiptUrl,omitempty" yaml:"receiptUrl,omitempty" csv:"receipt_url"`
}

// Totals is the collection-wide part of a report.
type Totals struct {
	Purchases      int    `json:"purchases" yaml:"purchases"`
	PaidOff        int    `json:"paidOff" yaml:"paidOff"`
	TotalValue     string `json:"totalValue" yaml:"totalValue"`
	TotalAmortized string `json:"totalAmortized" yaml:"totalAmortized"`
	TotalBalance   string `json:"totalBalance" yaml:"totalBalance"`
}

// Report is the document rendered for the json and yaml formats.
type Report struct {
	GeneratedAt string `json:"generatedAt" yaml:"generatedAt"`
	Currency    string `json:"currency" yaml:"currency"`
	Totals      Totals `json:"totals" yaml:"totals"`
	Purchases   []Row  `json:"purchases" yaml:"purchases"`
}

// Generator renders reports.
type Generator struct {
	logger    logging.Logger
	delimiter rune
	currency  string
	now       func() time.Time
}

// NewGenerator creates a Generator writing csv with the given delimiter.
func NewGenerator(logger logging.Logger, delimiter rune, currency string) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Generator{
		logger:    logger.WithField(logging.FieldComponent, "report"),
		delimiter: delimiter,
		currency:  currency,
		now:       time.Now,
	}
}

// Build computes the report document for c.
func (g *Generator) Build(c models.Collection) Report {
	summary := c.Summarize()
	return Report{
		GeneratedAt: models.DateOf(g.now()).String(),
		Currency:    g.currency,
		Totals: Totals{
			Purchases:      summary.Purchases,
			PaidOff:        summary.PaidOff,
			TotalValue:     summary.TotalValue.StringFixed(2),
			TotalAmortized: summary.TotalAmortized.StringFixed(2),
			TotalBalance:   summary.TotalBalance.StringFixed(2),
		},
		Purchases: Rows(c),
	}
}

// Rows converts each purchase of c to its report line.
func Rows(c models.Collection) []Row {
	rows := make([]Row, 0, len(c))
	for _, p := range c {
		rows = append(rows, Row{
			ID:                   p.ID,
			Name:                 p.Name,
			StartDate:            p.StartDate,
			Installments:         p.Installments,
			TotalValue:           p.TotalValue.StringFixed(2),
			EstimatedInstallment: p.EstimatedInstallment().StringFixed(2),
			TotalAmortized:       p.TotalAmortized().StringFixed(2),
			CurrentBalance:       p.CurrentBalance().StringFixed(2),
			Progress:             p.ProgressPercentage().StringFixed(2),
			Amortizations:        len(p.Amortizations),
			ReceiptURL:           p.ReceiptURL,
		})
	}
	return rows
}

// Generate renders c in the requested format.
func (g *Generator) Generate(c models.Collection, format string) ([]byte, error) {
	log := g.logger.WithFields(
		logging.F(logging.FieldOperation, logging.OpReport),
		logging.F(logging.FieldFormat, format),
		logging.F(logging.FieldCount, len(c)),
	)

	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(g.Build(c), "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(g.Build(c))
	case FormatCSV:
		out, err = g.generateCSV(c)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
	if err != nil {
		log.WithError(err).Error("Failed to generate report")
		return nil, fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	log.Debug("Report generated")
	return out, nil
}

func (g *Generator) generateCSV(c models.Collection) ([]byte, error) {
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	csvWriter.Comma = g.delimiter

	rows := Rows(c)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
