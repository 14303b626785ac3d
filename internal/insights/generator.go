package insights

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
)

// ModelClient generates prose from a prompt.
type ModelClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Gemini text-generation API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

// TransactionSource supplies the recent transaction window to analyze.
type TransactionSource interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]core.Transaction, error)
}

// Generator produces a markdown financial report for one user: fetch the
// recent window, summarize it, prompt the model, return its output verbatim.
type Generator struct {
	source TransactionSource
	model  ModelClient // nil when no API credential is configured
	logger *log.Logger

	fetchLimit  int
	maxAttempts int
	baseDelay   time.Duration
}

func NewGenerator(source TransactionSource, model ModelClient, fetchLimit int, logger *log.Logger) *Generator {
	return &Generator{
		source:      source,
		model:       model,
		logger:      logger.WithComponent(log.ComponentInsights),
		fetchLimit:  fetchLimit,
		maxAttempts: 3,
		baseDelay:   time.Second,
	}
}

// Insights returns the generated markdown for the user's recent activity.
// Fails with ErrMisconfigured when no model is configured, with
// ErrInsufficientData below the minimum window, and with
// ErrServiceUnavailable when the backend stays unavailable through every
// retry.
func (g *Generator) Insights(ctx context.Context, userID string, currency string) (string, error) {
	if g.model == nil {
		return "", core.ErrMisconfigured
	}

	transactions, err := g.source.ListRecent(ctx, userID, g.fetchLimit)
	if err != nil {
		return "", fmt.Errorf("fetch transactions: %w", err)
	}

	summary, err := BuildSummary(transactions)
	if err != nil {
		return "", err
	}

	prompt, err := BuildPrompt(summary, currency)
	if err != nil {
		return "", err
	}

	attempt := 0
	text, err := retryWithBackoff(ctx, g.maxAttempts, g.baseDelay, isUnavailable, func() (string, error) {
		attempt++
		out, genErr := g.model.GenerateText(ctx, prompt)
		if genErr != nil {
			g.logger.WarnContext(ctx, "Model call failed",
				log.FieldAttempt, attempt,
				log.FieldError, genErr)
		}
		return out, genErr
	})
	if err != nil {
		if isUnavailable(err) {
			return "", fmt.Errorf("%w: %v", core.ErrServiceUnavailable, err)
		}
		return "", err
	}

	g.logger.InfoContext(ctx, "Generated insights",
		log.FieldUserID, userID,
		"transaction_count", summary.TransactionCount,
		log.FieldAttempt, attempt)

	return text, nil
}

// isUnavailable reports whether err is the backend's "temporarily
// unavailable" response, the only failure worth retrying.
func isUnavailable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusServiceUnavailable
	}
	return false
}
