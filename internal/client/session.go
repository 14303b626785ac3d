package client

import (
	"context"
	"sync"
	"time"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
)

// DefaultRefreshInterval sits well inside the provider's one-hour token
// lifetime.
const DefaultRefreshInterval = 30 * time.Minute

// Refresher exchanges the caller's credentials for a fresh bearer token.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Session keeps a bearer token fresh in the background. Identity provider
// tokens expire after an hour, so the session re-mints on an interval well
// inside that window.
type Session struct {
	refresher Refresher
	interval  time.Duration
	logger    *log.Logger

	mu    sync.RWMutex
	token string

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewSession creates a session that refreshes every interval once started.
func NewSession(refresher Refresher, interval time.Duration, logger *log.Logger) *Session {
	return &Session{
		refresher: refresher,
		interval:  interval,
		logger:    logger.WithComponent(log.ComponentSession),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start performs an initial refresh and launches the background loop.
// It returns an error if the first refresh fails; later failures are
// logged and retried on the next tick, keeping the previous token.
func (s *Session) Start(ctx context.Context) error {
	if err := s.refreshOnce(ctx); err != nil {
		return err
	}
	go s.loop(ctx)
	return nil
}

func (s *Session) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.refreshOnce(ctx); err != nil {
				s.logger.WarnContext(ctx, "token refresh failed", log.FieldError, err)
			}
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		}
	}
}

func (s *Session) refreshOnce(ctx context.Context) error {
	token, err := s.refresher.Refresh(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Token returns the current bearer token. Implements TokenSource.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", core.ErrUnauthorized
	}
	return s.token, nil
}

// Stop ends the refresh loop. Safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}
