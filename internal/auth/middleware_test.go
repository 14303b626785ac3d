package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
)

type fakeVerifier struct {
	identity Identity
	err      error
	gotToken string
}

func (f *fakeVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	f.gotToken = idToken
	if f.err != nil {
		return Identity{}, f.err
	}
	return f.identity, nil
}

type fakeResolver struct {
	calls int
	err   error
}

func (f *fakeResolver) GetOrCreate(ctx context.Context, u core.User) (core.User, error) {
	f.calls++
	if f.err != nil {
		return core.User{}, f.err
	}
	u.Preferences = core.DefaultPreferences()
	return u, nil
}

func newTestRouter(verifier TokenVerifier, users UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(verifier, users, log.New(log.DefaultConfig())))
	r.GET("/protected", func(c *gin.Context) {
		user, _ := UserFrom(c)
		c.JSON(http.StatusOK, gin.H{"uid": user.FirebaseUID})
	})
	return r
}

func TestMiddleware_MissingHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{}
			resolver := &fakeResolver{}
			r := newTestRouter(verifier, resolver)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if resolver.calls != 0 {
				t.Error("resolver must not be called without a credential")
			}
		})
	}
}

func TestMiddleware_RejectedToken(t *testing.T) {
	verifier := &fakeVerifier{err: core.ErrUnauthorized}
	r := newTestRouter(verifier, &fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if verifier.gotToken != "bad-token" {
		t.Errorf("verifier received token %q", verifier.gotToken)
	}
}

func TestMiddleware_AttachesUser(t *testing.T) {
	verifier := &fakeVerifier{identity: Identity{
		UID:         "uid-42",
		Email:       "u@example.com",
		DisplayName: "U",
	}}
	resolver := &fakeResolver{}
	r := newTestRouter(verifier, resolver)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resolver.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", resolver.calls)
	}
	if body := w.Body.String(); body != `{"uid":"uid-42"}` {
		t.Errorf("body = %s", body)
	}
}
