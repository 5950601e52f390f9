package report

import (
	"io"

	"github.com/go-pdf/fpdf"
)

var pdfWidths = []float64{22, 18, 32, 32, 32, 96, 25}

// RenderPDF writes a landscape A4 transaction report to w.
func RenderPDF(w io.Writer, d Data) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Transactions Report", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Transactions Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if d.Owner != "" {
		pdf.CellFormat(0, 6, tr(d.Owner), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Period: "+PeriodLabel(d.FromDate, d.ToDate, d.Transactions), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+d.GeneratedAt.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	summary := [][2]string{
		{"Total income", d.Statistics.TotalIncome.String()},
		{"Total expense", d.Statistics.TotalExpense.String()},
		{"Net amount", d.Statistics.NetAmount.String()},
	}
	for _, line := range summary {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, line[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(40, 6, line[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 224, 214)
		for i, h := range headers {
			align := "L"
			if i == len(headers)-1 {
				align = "R"
			}
			pdf.CellFormat(pdfWidths[i], 7, h, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	lines := rows(d.Transactions)
	if len(lines) == 0 {
		pdf.CellFormat(sum(pdfWidths), 7, "No transactions", "1", 1, "C", false, 0, "")
	}
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, r := range lines {
		if pdf.GetY()+7 > pageHeight-bottom-15 {
			pdf.AddPage()
			header()
		}
		for i, v := range r.values() {
			align := "L"
			if i == len(pdfWidths)-1 {
				align = "R"
			}
			pdf.CellFormat(pdfWidths[i], 7, fit(pdf, tr(v), pdfWidths[i]-2), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// fit truncates s so that it renders within width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
