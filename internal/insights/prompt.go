package insights

import (
	"encoding/json"
	"fmt"
	"strings"
)

// reportTemplate is the markdown structure the model is asked to fill in.
const reportTemplate = `
# 📊 Financial Overview
## Total Income and Expenses
## Net Savings and Savings Rate
## Monthly Averages

# 💰 Income Analysis
## Income Sources
## Income Trends

# 💸 Expense Breakdown
## Total Expenses
## Expense Categories with Amounts and Percentages
## Top Expense Categories

# 📈 Top Spending Categories
## Detailed Category Analysis
## Spending Trends

# 🎯 Personalized Recommendations
## Short-term Goals
## Long-term Goals
## Budgeting Strategies

# 📅 Monthly Insights
## Monthly Spending Trends
## Irregular Transactions
`

// BuildPrompt embeds the structured summary into the fixed advisor prompt.
func BuildPrompt(summary Summary, currency string) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a financial expert and advisor. Analyze the following summarized financial data for a user (all amounts in ")
	b.WriteString(currencyName(currency))
	b.WriteString(") and provide clear, actionable financial insights.\n\n")

	b.WriteString("**Summary Data:**\n")
	b.Write(data)
	b.WriteString("\n\n")

	b.WriteString("**Analysis Goals:**\n")
	b.WriteString("1. Provide a Financial Overview: total income, total expenses, net savings/income, and monthly averages.\n")
	b.WriteString("2. Analyze Spending Patterns by category with percentages and trends.\n")
	b.WriteString("3. Identify the Top 3 expense categories with amounts and percentages.\n")
	b.WriteString("4. Compare Income sources versus Expenses.\n")
	b.WriteString("5. Calculate and comment on the Savings Rate.\n")
	b.WriteString("6. Highlight any Irregular or large transactions.\n")
	b.WriteString("7. Note Monthly Spending Trends.\n\n")

	b.WriteString("**Recommendations:**\n")
	b.WriteString("- Give 3-4 specific, actionable recommendations based on spending patterns.\n")
	b.WriteString("- Include both short-term and long-term financial goals.\n")
	b.WriteString("- Suggest budgeting strategies.\n")
	b.WriteString("- Provide personalized tips based on the summarized data.\n\n")

	b.WriteString("**Formatting Instructions:**\n")
	b.WriteString("- Use clear markdown with headers and subheaders.\n")
	b.WriteString("- Include specific amounts and percentages where relevant.\n")
	b.WriteString("- Use bullet points and numbered lists for clarity.\n")
	b.WriteString("- Maintain a professional yet encouraging tone.\n")
	b.WriteString("- Make insights data-driven and specific to the user's financial summary.\n\n")

	b.WriteString("**Response Format:**\n")
	b.WriteString(reportTemplate)

	return b.String(), nil
}

func currencyName(currency string) string {
	switch currency {
	case "", "INR":
		return "Rupees"
	case "USD":
		return "US Dollars"
	case "EUR":
		return "Euros"
	case "GBP":
		return "Pounds"
	default:
		return currency
	}
}
