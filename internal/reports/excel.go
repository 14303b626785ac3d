// Package reports renders a user's transaction history to downloadable
// spreadsheet and PDF artifacts. Nothing is persisted server-side; both
// writers stream straight to the response.
package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

const sheetName = "Transactions"

const dateLayout = "02 Jan 2006"

// WriteExcel renders one sheet with a header row and one row per
// transaction, newest-first in the order given.
func WriteExcel(w io.Writer, transactions []core.Transaction, currency string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 14}, {"B", 24}, {"C", 12}, {"D", 18},
	}
	for _, c := range widths {
		if err := f.SetColWidth(sheetName, c.col, c.col, c.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	header := []interface{}{
		"Date", "Category", "Type",
		fmt.Sprintf("Amount (%s)", core.CurrencySymbol(currency)),
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "D1", bold); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}

	for i, tx := range transactions {
		row := []interface{}{
			tx.Date.Format(dateLayout),
			tx.Category,
			string(tx.Type),
			core.FormatAmount(tx.Amount, currency),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
