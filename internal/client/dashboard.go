package client

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

// Dashboard is the derived view rendered from a transaction history.
// It is recomputed from the full list on every call rather than maintained
// incrementally, so it can never drift from the store.
type Dashboard struct {
	TotalIncome       float64
	TotalExpense      float64
	Balance           float64
	ExpenseByCategory map[string]float64
	MonthlyNet        map[string]float64
	TopCategories     []CategoryTotal
	Recent            []core.Transaction
}

// CategoryTotal pairs a category with its summed expense.
type CategoryTotal struct {
	Category string
	Amount   float64
}

const recentCount = 5

// BuildDashboard aggregates a transaction history into the dashboard view.
// Transactions are expected newest-first, as the list endpoint returns them.
func BuildDashboard(transactions []core.Transaction) Dashboard {
	income := decimal.Zero
	expense := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	monthly := make(map[string]decimal.Decimal)

	for _, tx := range transactions {
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.Type == core.Income {
			income = income.Add(amount)
		} else {
			expense = expense.Add(amount)
			byCategory[tx.Category] = byCategory[tx.Category].Add(amount)
		}
		monthly[tx.MonthKey()] = monthly[tx.MonthKey()].Add(decimal.NewFromFloat(tx.Signed()))
	}

	d := Dashboard{
		TotalIncome:       f64(income),
		TotalExpense:      f64(expense),
		Balance:           f64(income.Sub(expense)),
		ExpenseByCategory: make(map[string]float64, len(byCategory)),
		MonthlyNet:        make(map[string]float64, len(monthly)),
	}
	for category, total := range byCategory {
		d.ExpenseByCategory[category] = f64(total)
		d.TopCategories = append(d.TopCategories, CategoryTotal{Category: category, Amount: f64(total)})
	}
	for month, net := range monthly {
		d.MonthlyNet[month] = f64(net)
	}

	sort.Slice(d.TopCategories, func(i, j int) bool {
		if d.TopCategories[i].Amount != d.TopCategories[j].Amount {
			return d.TopCategories[i].Amount > d.TopCategories[j].Amount
		}
		return d.TopCategories[i].Category < d.TopCategories[j].Category
	})
	if len(d.TopCategories) > 3 {
		d.TopCategories = d.TopCategories[:3]
	}

	n := recentCount
	if len(transactions) < n {
		n = len(transactions)
	}
	d.Recent = append(d.Recent, transactions[:n]...)

	return d
}

func f64(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}
