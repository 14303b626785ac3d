package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const secureTokenEndpoint = "https://securetoken.googleapis.com/v1/token"

// FirebaseRefresher mints ID tokens from a long-lived refresh token, the
// same exchange the provider's web SDK performs. Pairs with Session to keep
// a CLI or service credential fresh without re-authenticating.
type FirebaseRefresher struct {
	apiKey       string
	refreshToken string
	endpoint     string
	http         *http.Client
}

// NewFirebaseRefresher creates a refresher for the given web API key and
// refresh token.
func NewFirebaseRefresher(apiKey, refreshToken string) *FirebaseRefresher {
	return &FirebaseRefresher{
		apiKey:       apiKey,
		refreshToken: refreshToken,
		endpoint:     secureTokenEndpoint,
		http:         &http.Client{Timeout: 30 * time.Second},
	}
}

// Refresh exchanges the refresh token for a fresh ID token.
func (r *FirebaseRefresher) Refresh(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {r.refreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.endpoint+"?key="+url.QueryEscape(r.apiKey), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed with status %d", resp.StatusCode)
	}

	var out struct {
		IDToken string `json:"id_token"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if out.IDToken == "" {
		return "", fmt.Errorf("token exchange returned no id token")
	}
	return out.IDToken, nil
}
