package client

import (
	"testing"
	"time"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

func dashTx(category string, amount float64, txType core.TransactionType, date time.Time) core.Transaction {
	return core.Transaction{Category: category, Amount: amount, Type: txType, Date: date}
}

func TestBuildDashboard_Totals(t *testing.T) {
	apr := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	d := BuildDashboard([]core.Transaction{
		dashTx("Salary", 8000, core.Income, may),
		dashTx("Rent", 1500, core.Expense, may),
		dashTx("Food", 500, core.Expense, apr),
		dashTx("Salary", 8000, core.Income, apr),
	})

	if d.TotalIncome != 16000 {
		t.Errorf("TotalIncome = %v, want 16000", d.TotalIncome)
	}
	if d.TotalExpense != 2000 {
		t.Errorf("TotalExpense = %v, want 2000", d.TotalExpense)
	}
	if d.Balance != 14000 {
		t.Errorf("Balance = %v, want 14000", d.Balance)
	}
	if d.MonthlyNet["2025-04"] != 7500 {
		t.Errorf("April net = %v, want 7500", d.MonthlyNet["2025-04"])
	}
	if d.MonthlyNet["2025-05"] != 6500 {
		t.Errorf("May net = %v, want 6500", d.MonthlyNet["2025-05"])
	}
}

func TestBuildDashboard_TopCategories(t *testing.T) {
	now := time.Now()
	d := BuildDashboard([]core.Transaction{
		dashTx("Food", 300, core.Expense, now),
		dashTx("Rent", 1000, core.Expense, now),
		dashTx("Travel", 500, core.Expense, now),
		dashTx("Bills", 200, core.Expense, now),
		dashTx("Salary", 5000, core.Income, now),
	})

	want := []string{"Rent", "Travel", "Food"}
	if len(d.TopCategories) != 3 {
		t.Fatalf("len = %d, want 3", len(d.TopCategories))
	}
	for i, cat := range want {
		if d.TopCategories[i].Category != cat {
			t.Errorf("top[%d] = %s, want %s", i, d.TopCategories[i].Category, cat)
		}
	}
	if d.ExpenseByCategory["Rent"] != 1000 {
		t.Errorf("Rent total = %v", d.ExpenseByCategory["Rent"])
	}
}

func TestBuildDashboard_RecentKeepsOrder(t *testing.T) {
	now := time.Now()
	var transactions []core.Transaction
	for i := 0; i < 8; i++ {
		transactions = append(transactions, dashTx("Food", float64(i+1), core.Expense, now))
	}

	d := BuildDashboard(transactions)
	if len(d.Recent) != 5 {
		t.Fatalf("recent len = %d, want 5", len(d.Recent))
	}
	if d.Recent[0].Amount != 1 {
		t.Errorf("recent[0].Amount = %v, want first list element", d.Recent[0].Amount)
	}
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(nil)
	if d.TotalIncome != 0 || d.TotalExpense != 0 || d.Balance != 0 {
		t.Errorf("totals = %+v, want zeros", d)
	}
	if len(d.Recent) != 0 {
		t.Errorf("recent = %v, want empty", d.Recent)
	}
	if len(d.TopCategories) != 0 {
		t.Errorf("top categories = %v, want empty", d.TopCategories)
	}
}
