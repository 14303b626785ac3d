// Command expense-cli is a small terminal client for the expense tracker
// API. It authenticates with a bearer token from the environment, or keeps
// one fresh from a Firebase refresh token, and prints human-readable output.
//
// Credentials: set EXPENSE_API_TOKEN to a ready ID token, or set
// EXPENSE_API_REFRESH_TOKEN together with FIREBASE_WEB_API_KEY to have the
// CLI mint and rotate tokens itself.
//
// Usage:
//
//	expense-cli [-url http://localhost:5000] <command> [args]
//
// Commands:
//
//	login                       resolve (or provision) the account
//	list                        print the full transaction history
//	add <type> <category> <amount> [date]
//	update <id> [-category c] [-amount a] [-date d]
//	remove <id>                 delete a transaction
//	stats                       print aggregate totals
//	dashboard                   print totals, top categories and recent activity
//	insights                    print the AI financial analysis
//	export <excel|pdf> <file>   download a report
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/client"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
)

const dateLayout = "2006-01-02"

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("url", envOr("EXPENSE_API_URL", "http://localhost:5000"), "API base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(log.DefaultConfig())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokens, err := tokenSource(ctx, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	api := client.New(*baseURL, tokens, logger)
	store := client.NewStore(api)

	if err := run(ctx, api, store, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// tokenSource prefers a self-refreshing session when refresh credentials are
// present and falls back to a static token.
func tokenSource(ctx context.Context, logger *log.Logger) (client.TokenSource, error) {
	refreshToken := os.Getenv("EXPENSE_API_REFRESH_TOKEN")
	apiKey := os.Getenv("FIREBASE_WEB_API_KEY")
	if refreshToken != "" && apiKey != "" {
		session := client.NewSession(client.NewFirebaseRefresher(apiKey, refreshToken),
			client.DefaultRefreshInterval, logger)
		if err := session.Start(ctx); err != nil {
			return nil, fmt.Errorf("start session: %w", err)
		}
		return session, nil
	}

	token := os.Getenv("EXPENSE_API_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("set EXPENSE_API_TOKEN, or EXPENSE_API_REFRESH_TOKEN with FIREBASE_WEB_API_KEY")
	}
	return client.StaticToken(token), nil
}

func run(ctx context.Context, api *client.Client, store *client.Store, args []string) error {
	switch args[0] {
	case "login":
		user, err := api.Login(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s)\n", user.DisplayName, user.Email)
		return nil

	case "list":
		return runList(ctx, store)

	case "add":
		return runAdd(ctx, store, args[1:])

	case "update":
		return runUpdate(ctx, store, args[1:])

	case "dashboard":
		return runDashboard(ctx, store)

	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: remove <id>")
		}
		if err := store.Remove(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Removed", args[1])
		return nil

	case "stats":
		stats, err := api.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Income:       %12.2f\n", stats.Income)
		fmt.Printf("Expense:      %12.2f\n", stats.Expense)
		fmt.Printf("Balance:      %12.2f\n", stats.Balance)
		fmt.Printf("Transactions: %12d\n", stats.TotalTransactions)
		return nil

	case "insights":
		text, err := api.Insights(ctx)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil

	case "export":
		return runExport(ctx, api, args[1:])

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runList(ctx context.Context, store *client.Store) error {
	transactions, err := store.Transactions(ctx)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		fmt.Println("No transactions yet")
		return nil
	}

	fmt.Printf("%-26s %-10s %-20s %12s  %s\n", "ID", "DATE", "CATEGORY", "AMOUNT", "TYPE")
	for _, tx := range transactions {
		fmt.Printf("%-26s %-10s %-20s %12.2f  %s\n",
			tx.ID.Hex(), tx.Date.Format(dateLayout), tx.Category, tx.Amount, tx.Type)
	}
	return nil
}

func runAdd(ctx context.Context, store *client.Store, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("usage: add <income|expense> <category> <amount> [YYYY-MM-DD]")
	}

	amount, err := core.ParseAmount(args[2])
	if err != nil {
		return err
	}

	tx := client.NewTransaction{
		Type:     strings.ToLower(args[0]),
		Category: args[1],
		Amount:   amount,
		Date:     time.Now(),
	}
	if len(args) == 4 {
		date, err := time.Parse(dateLayout, args[3])
		if err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[3])
		}
		tx.Date = date
	}

	created, err := store.Add(ctx, tx)
	if err != nil {
		return err
	}
	fmt.Println("Created", created.ID.Hex())
	return nil
}

func runUpdate(ctx context.Context, store *client.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: update <id> [-category c] [-amount a] [-date YYYY-MM-DD]")
	}
	id := args[0]

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	category := fs.String("category", "", "new category")
	amountStr := fs.String("amount", "", "new amount")
	dateStr := fs.String("date", "", "new date (YYYY-MM-DD)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var patch client.TransactionPatch
	if *category != "" {
		patch.Category = category
	}
	if *amountStr != "" {
		amount, err := core.ParseAmount(*amountStr)
		if err != nil {
			return err
		}
		patch.Amount = &amount
	}
	if *dateStr != "" {
		date, err := time.Parse(dateLayout, *dateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", *dateStr)
		}
		patch.Date = &date
	}

	updated, err := store.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s: %s %s %.2f\n", updated.ID.Hex(), updated.Type, updated.Category, updated.Amount)
	return nil
}

func runDashboard(ctx context.Context, store *client.Store) error {
	transactions, err := store.Transactions(ctx)
	if err != nil {
		return err
	}

	d := client.BuildDashboard(transactions)
	fmt.Printf("Income:  %12.2f\n", d.TotalIncome)
	fmt.Printf("Expense: %12.2f\n", d.TotalExpense)
	fmt.Printf("Balance: %12.2f\n", d.Balance)

	if len(d.TopCategories) > 0 {
		fmt.Println("\nTop spending categories:")
		for _, ct := range d.TopCategories {
			fmt.Printf("  %-20s %12.2f\n", ct.Category, ct.Amount)
		}
	}
	if len(d.Recent) > 0 {
		fmt.Println("\nRecent activity:")
		for _, tx := range d.Recent {
			fmt.Printf("  %-10s %-20s %12.2f  %s\n",
				tx.Date.Format(dateLayout), tx.Category, tx.Amount, tx.Type)
		}
	}
	return nil
}

func runExport(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: export <excel|pdf> <file>")
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	switch args[0] {
	case "excel":
		err = api.DownloadExcel(ctx, f)
	case "pdf":
		err = api.DownloadPDF(ctx, f)
	default:
		return fmt.Errorf("unknown report format %q", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Println("Wrote", args[1])
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
