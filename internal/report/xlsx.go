package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Transactions"

// RenderXLSX writes a single-sheet workbook with a summary block followed
// by one row per transaction.
func RenderXLSX(w io.Writer, d Data) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	moneyFmt := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Transactions Report"},
		{"Period", PeriodLabel(d.FromDate, d.ToDate, d.Transactions)},
		{"Total income", d.Statistics.TotalIncome.Decimal().InexactFloat64()},
		{"Total expense", d.Statistics.TotalExpense.Decimal().InexactFloat64()},
		{"Net amount", d.Statistics.NetAmount.Decimal().InexactFloat64()},
		{"Transactions", d.Statistics.TransactionCount},
	}
	for i, values := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "A6", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "B3", "B5", amountStyle); err != nil {
		return err
	}

	headerRow := len(summary) + 2
	headerCell, _ := excelize.CoordinatesToCellName(1, headerRow)
	headerValues := make([]interface{}, len(headers))
	for i, h := range headers {
		headerValues[i] = h
	}
	if err := f.SetSheetRow(sheetName, headerCell, &headerValues); err != nil {
		return err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	if err := f.SetCellStyle(sheetName, headerCell, lastHeader, bold); err != nil {
		return err
	}

	for i, r := range rows(d.Transactions) {
		amount := d.Transactions[i].Amount.Decimal().InexactFloat64()
		values := []interface{}{r.Date, r.Type, r.Account, r.Category, r.Counterparty, r.Note, amount}
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}
	if n := len(d.Transactions); n > 0 {
		first, _ := excelize.CoordinatesToCellName(len(headers), headerRow+1)
		last, _ := excelize.CoordinatesToCellName(len(headers), headerRow+n)
		if err := f.SetCellStyle(sheetName, first, last, amountStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "C", "E", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "F", "F", 40); err != nil {
		return err
	}

	return f.Write(w)
}
