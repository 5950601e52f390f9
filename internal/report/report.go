// Package report renders a user's transactions and their totals as PDF or
// XLSX documents.
package report

import (
	"fmt"
	"strings"
	"time"

	"brewbooks/internal/models"
	"brewbooks/internal/services"
)

// Format is an output document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

const labelLayout = "02 Jan 2006"

// ParseFormat resolves a format name. An empty name selects PDF.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// Filename returns the download name for a report generated at now.
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("transactions-report-%s.%s", now.Format(models.DateLayout), f)
}

// Data is everything a report shows. Transactions are expected in the
// order they should be printed.
type Data struct {
	Owner        string
	Transactions []models.Transaction
	Statistics   services.Statistics
	FromDate     *time.Time
	ToDate       *time.Time
	GeneratedAt  time.Time
}

// PeriodLabel describes the covered date range. A missing bound falls back
// to the earliest or latest transaction date.
func PeriodLabel(from, to *time.Time, transactions []models.Transaction) string {
	if from != nil && to != nil {
		return from.Format(labelLayout) + " - " + to.Format(labelLayout)
	}

	first, last, ok := dateBounds(transactions)
	switch {
	case from != nil:
		end := "Today"
		if ok {
			end = last.Format(labelLayout)
		}
		return from.Format(labelLayout) + " - " + end
	case to != nil:
		start := "Start"
		if ok {
			start = first.Format(labelLayout)
		}
		return start + " - " + to.Format(labelLayout)
	case ok:
		return first.Format(labelLayout) + " - " + last.Format(labelLayout)
	}
	return "No transactions"
}

func dateBounds(transactions []models.Transaction) (first, last time.Time, ok bool) {
	for i, t := range transactions {
		if i == 0 || t.Date.Before(first) {
			first = t.Date
		}
		if i == 0 || t.Date.After(last) {
			last = t.Date
		}
	}
	return first, last, len(transactions) > 0
}

// row is one printed transaction line.
type row struct {
	Date         string
	Type         string
	Account      string
	Category     string
	Counterparty string
	Note         string
	Amount       string
}

var headers = []string{"Date", "Type", "Account", "Category", "Counterparty", "Note", "Amount"}

func rows(transactions []models.Transaction) []row {
	out := make([]row, 0, len(transactions))
	for _, t := range transactions {
		r := row{
			Date:   t.Date.Format(models.DateLayout),
			Type:   string(t.Type),
			Amount: t.Amount.String(),
		}
		if t.Account != nil {
			r.Account = t.Account.Name
		}
		if t.Category != nil {
			r.Category = t.Category.Name
		}
		if t.Counterparty != nil {
			r.Counterparty = *t.Counterparty
		}
		if t.Note != nil {
			r.Note = *t.Note
		}
		out = append(out, r)
	}
	return out
}

func (r row) values() []string {
	return []string{r.Date, r.Type, r.Account, r.Category, r.Counterparty, r.Note, r.Amount}
}
