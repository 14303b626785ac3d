package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestRefresher(srv *httptest.Server) *FirebaseRefresher {
	r := NewFirebaseRefresher("web-api-key", "refresh-abc")
	r.endpoint = srv.URL
	return r
}

func TestFirebaseRefresher_ExchangesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.URL.Query().Get("key"); got != "web-api-key" {
			t.Errorf("key = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "refresh_token" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.PostForm.Get("refresh_token"); got != "refresh-abc" {
			t.Errorf("refresh_token = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"id_token": "fresh-id-token"})
	}))
	defer srv.Close()

	token, err := newTestRefresher(srv).Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if token != "fresh-id-token" {
		t.Errorf("token = %q", token)
	}
}

func TestFirebaseRefresher_RejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "INVALID_REFRESH_TOKEN"}})
	}))
	defer srv.Close()

	if _, err := newTestRefresher(srv).Refresh(context.Background()); err == nil {
		t.Fatal("expected error for rejected refresh token")
	}
}

func TestFirebaseRefresher_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	if _, err := newTestRefresher(srv).Refresh(context.Background()); err == nil {
		t.Fatal("expected error for response without id token")
	}
}

func TestSession_WithFirebaseRefresher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id_token": "session-token"})
	}))
	defer srv.Close()

	s := NewSession(newTestRefresher(srv), DefaultRefreshInterval, testLogger())
	defer s.Stop()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	token, err := s.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "session-token" {
		t.Errorf("token = %q", token)
	}
}
