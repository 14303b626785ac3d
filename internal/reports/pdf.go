package reports

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

var columnWidths = [4]float64{35, 75, 30, 45}

// WritePDF renders a paginated report: cover title and generation date, a
// table of all transactions with the header repeated on every page, and a
// trailing summary block. Page-number footers come from the footer hook.
func WritePDF(w io.Writer, transactions []core.Transaction, currency string, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 25)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	tableHeader := func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(0, 123, 255)
		pdf.SetTextColor(255, 255, 255)
		for i, title := range []string{"Date", "Category", "Type", fmt.Sprintf("Amount (%s)", core.CurrencySymbol(currency))} {
			pdf.CellFormat(columnWidths[i], 10, title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetHeaderFuncMode(func() {
		// The cover page draws its own heading; later pages resume the table.
		if pdf.PageNo() > 1 {
			tableHeader()
		}
	}, true)

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 14, "Transaction Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 8, "Generated on: "+generatedAt.Format("Monday, 2 January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	tableHeader()

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	for i, tx := range transactions {
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.Type == core.Income {
			totalIncome = totalIncome.Add(amount)
		} else {
			totalExpense = totalExpense.Add(amount)
		}

		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		fill := i%2 == 1
		pdf.SetFillColor(248, 249, 250)

		cells := [4]string{
			tx.Date.Format(dateLayout),
			tx.Category,
			titleCase(string(tx.Type)),
			core.FormatAmount(tx.Amount, currency),
		}
		for j, cell := range cells {
			pdf.CellFormat(columnWidths[j], 9, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	netBalance := totalIncome.Sub(totalExpense)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 10, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	symbol := core.CurrencySymbol(currency)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Income: %s %s", symbol, core.GroupIndian(totalIncome)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Expense: %s %s", symbol, core.GroupIndian(totalExpense)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Net Balance: %s %s", symbol, core.GroupIndian(netBalance)), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
