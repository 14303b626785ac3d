package insights

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

const (
	// MinTransactions is the smallest set worth analyzing.
	MinTransactions = 5

	// largeTransactionFloor is the lower bound of the outlier threshold:
	// a transaction is "large" above max(10% of total expense, this floor).
	largeTransactionFloor = 5000

	topCategoryCount = 3
)

type (
	// CategoryShare is an expense category annotated with its share of
	// total expenses.
	CategoryShare struct {
		Category   string  `json:"category"`
		Amount     float64 `json:"amount"`
		Percentage string  `json:"percentage"`
	}

	// OutlierTransaction is a transaction flagged by the magnitude
	// heuristic, not a statistical test.
	OutlierTransaction struct {
		Category string               `json:"category"`
		Amount   float64              `json:"amount"`
		Type     core.TransactionType `json:"type"`
		Date     time.Time            `json:"date"`
	}

	// Summary is the structured aggregate embedded into the model prompt
	// in place of the raw transaction list.
	Summary struct {
		TotalIncome        float64              `json:"totalIncome"`
		TotalExpenses      float64              `json:"totalExpenses"`
		NetSavings         float64              `json:"netSavings"`
		SavingsRate        string               `json:"savingsRate"`
		CategoryExpenses   map[string]float64   `json:"categoryExpenses"`
		CategoryIncome     map[string]float64   `json:"categoryIncome"`
		MonthlySpending    map[string]float64   `json:"monthlySpending"`
		LargeTransactions  []OutlierTransaction `json:"largeTransactions"`
		TopCategories      []CategoryShare      `json:"topCategories"`
		AvgMonthlyIncome   float64              `json:"avgMonthlyIncome"`
		AvgMonthlyExpenses float64              `json:"avgMonthlyExpenses"`
		TransactionCount   int                  `json:"transactionCount"`
	}
)

// BuildSummary computes the aggregate view of a transaction set in one pass.
// Fails with ErrInsufficientData below MinTransactions.
func BuildSummary(transactions []core.Transaction) (Summary, error) {
	if len(transactions) < MinTransactions {
		return Summary{}, core.ErrInsufficientData
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	categoryIncome := map[string]decimal.Decimal{}
	categoryExpenses := map[string]decimal.Decimal{}
	monthlySpending := map[string]decimal.Decimal{}

	for _, tx := range transactions {
		amount := decimal.NewFromFloat(tx.Amount).Abs()

		if tx.Type == core.Income {
			totalIncome = totalIncome.Add(amount)
			categoryIncome[tx.Category] = categoryIncome[tx.Category].Add(amount)
		} else {
			totalExpenses = totalExpenses.Add(amount)
			categoryExpenses[tx.Category] = categoryExpenses[tx.Category].Add(amount)
		}

		month := tx.MonthKey()
		monthlySpending[month] = monthlySpending[month].Add(amount)
	}

	netSavings := totalIncome.Sub(totalExpenses)

	// Income of zero means a zero savings rate, not a division by zero.
	savingsRate := decimal.Zero
	if totalIncome.Sign() > 0 {
		savingsRate = netSavings.Div(totalIncome).Mul(decimal.NewFromInt(100))
	}

	threshold := totalExpenses.Mul(decimal.NewFromFloat(0.1))
	if floor := decimal.NewFromInt(largeTransactionFloor); threshold.LessThan(floor) {
		threshold = floor
	}
	var large []OutlierTransaction
	for _, tx := range transactions {
		if decimal.NewFromFloat(tx.Amount).Abs().GreaterThan(threshold) {
			large = append(large, OutlierTransaction{
				Category: tx.Category,
				Amount:   tx.Amount,
				Type:     tx.Type,
				Date:     tx.Date,
			})
		}
	}

	months := decimal.NewFromInt(int64(len(monthlySpending)))
	avgIncome, _ := totalIncome.Div(months).Round(2).Float64()
	avgExpenses, _ := totalExpenses.Div(months).Round(2).Float64()

	summary := Summary{
		NetSavings:         f64(netSavings),
		SavingsRate:        savingsRate.StringFixed(1),
		TotalIncome:        f64(totalIncome),
		TotalExpenses:      f64(totalExpenses),
		CategoryExpenses:   toFloatMap(categoryExpenses),
		CategoryIncome:     toFloatMap(categoryIncome),
		MonthlySpending:    toFloatMap(monthlySpending),
		LargeTransactions:  large,
		TopCategories:      topCategories(categoryExpenses, totalExpenses),
		AvgMonthlyIncome:   avgIncome,
		AvgMonthlyExpenses: avgExpenses,
		TransactionCount:   len(transactions),
	}
	return summary, nil
}

// topCategories returns the heaviest expense categories ordered by amount
// descending, each annotated with its percentage of total expenses. Ties
// break on the category name to keep the order stable.
func topCategories(byCategory map[string]decimal.Decimal, total decimal.Decimal) []CategoryShare {
	type entry struct {
		name   string
		amount decimal.Decimal
	}
	entries := make([]entry, 0, len(byCategory))
	for name, amount := range byCategory {
		entries = append(entries, entry{name: name, amount: amount})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].amount.Equal(entries[j].amount) {
			return entries[i].amount.GreaterThan(entries[j].amount)
		}
		return entries[i].name < entries[j].name
	})

	if len(entries) > topCategoryCount {
		entries = entries[:topCategoryCount]
	}

	shares := make([]CategoryShare, 0, len(entries))
	for _, e := range entries {
		pct := decimal.Zero
		if total.Sign() > 0 {
			pct = e.amount.Div(total).Mul(decimal.NewFromInt(100))
		}
		shares = append(shares, CategoryShare{
			Category:   e.name,
			Amount:     f64(e.amount),
			Percentage: pct.StringFixed(1),
		})
	}
	return shares
}

func toFloatMap(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = f64(v)
	}
	return out
}

func f64(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}
