// Package client is a typed consumer of the REST API. It layers a
// token-refreshing session, a local transaction store and dashboard
// aggregation on top of a plain HTTP client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
)

// TokenSource supplies the bearer credential attached to every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed credential.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

// Client calls the expense tracker API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *log.Logger
}

// New creates a client for the API at baseURL.
func New(baseURL string, tokens TokenSource, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		tokens:  tokens,
		logger:  logger.WithComponent(log.ComponentClient),
	}
}

// NewTransaction is the payload for creating a transaction.
type NewTransaction struct {
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date,omitempty"`
}

// TransactionPatch carries a partial update. Nil fields are left untouched.
type TransactionPatch struct {
	Category *string    `json:"category,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Type     *string    `json:"type,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// Login resolves the caller's account, provisioning it on first sight.
func (c *Client) Login(ctx context.Context) (core.User, error) {
	var out struct {
		User core.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, &out); err != nil {
		return core.User{}, err
	}
	return out.User, nil
}

// Profile fetches the caller's account record.
func (c *Client) Profile(ctx context.Context) (core.User, error) {
	var out struct {
		User core.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &out); err != nil {
		return core.User{}, err
	}
	return out.User, nil
}

// ListTransactions returns the caller's full history, newest-first.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var out struct {
		Transactions []core.Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, tx NewTransaction) (core.Transaction, error) {
	var out struct {
		Transaction core.Transaction `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/transactions", tx, &out); err != nil {
		return core.Transaction{}, err
	}
	return out.Transaction, nil
}

// UpdateTransaction applies a partial update to an owned transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (core.Transaction, error) {
	var out struct {
		Transaction core.Transaction `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/transactions/"+id, patch, &out); err != nil {
		return core.Transaction{}, err
	}
	return out.Transaction, nil
}

// DeleteTransaction removes an owned transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/transactions/"+id, nil, nil)
}

// Stats returns the caller's aggregate totals.
func (c *Client) Stats(ctx context.Context) (core.Stats, error) {
	var out struct {
		Stats core.Stats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/transactions/stats", nil, &out); err != nil {
		return core.Stats{}, err
	}
	return out.Stats, nil
}

// Insights returns the generated financial analysis as markdown.
func (c *Client) Insights(ctx context.Context) (string, error) {
	var out struct {
		Insights string `json:"insights"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ai/insights", nil, &out); err != nil {
		return "", err
	}
	return out.Insights, nil
}

// DownloadExcel streams the Excel report into w.
func (c *Client) DownloadExcel(ctx context.Context, w io.Writer) error {
	return c.download(ctx, "/api/reports/excel", w)
}

// DownloadPDF streams the PDF report into w.
func (c *Client) DownloadPDF(ctx context.Context, w io.Writer) error {
	return c.download(ctx, "/api/reports/pdf", w)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnauthorized, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) download(ctx context.Context, path string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, data)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

// apiError turns an error envelope back into a domain error.
func apiError(status int, data []byte) error {
	var envelope struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(data, &envelope)
	message := envelope.Error
	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", core.ErrUnauthorized, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", core.ErrNotFound, message)
	default:
		return fmt.Errorf("api error (%d): %s", status, message)
	}
}
