package reports

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

func sampleTransactions(n int) []core.Transaction {
	out := make([]core.Transaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, core.Transaction{
			Category: fmt.Sprintf("Category %d", i),
			Amount:   float64(100 * (i + 1)),
			Type:     core.Expense,
			Date:     time.Date(2025, 4, i+1, 0, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func TestWriteExcel_RowCount(t *testing.T) {
	transactions := sampleTransactions(7)

	var buf bytes.Buffer
	if err := WriteExcel(&buf, transactions, "INR"); err != nil {
		t.Fatalf("WriteExcel() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != len(transactions)+1 {
		t.Fatalf("rows = %d, want %d data rows plus one header row", len(rows), len(transactions))
	}

	header := rows[0]
	want := []string{"Date", "Category", "Type", "Amount (Rs)"}
	for i, col := range want {
		if header[i] != col {
			t.Errorf("header[%d] = %q, want %q", i, header[i], col)
		}
	}

	first := rows[1]
	if first[0] != "01 Apr 2025" {
		t.Errorf("date cell = %q", first[0])
	}
	if first[1] != "Category 0" {
		t.Errorf("category cell = %q", first[1])
	}
	if first[3] != "Rs 100.00" {
		t.Errorf("amount cell = %q", first[3])
	}
}

func TestWriteExcel_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, nil, "INR"); err != nil {
		t.Fatalf("WriteExcel() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want just the header", len(rows))
	}
}
