package client

import (
	"context"
	"sync"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

// API is the slice of Client the store depends on.
type API interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, tx NewTransaction) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// Store holds a local copy of the caller's transactions. The first read
// fetches from the API; mutations go to the API and patch the local copy
// from the server's response, so a round trip per mutation is enough.
type Store struct {
	api API

	mu      sync.RWMutex
	items   []core.Transaction
	fetched bool
}

// NewStore creates an empty store backed by api.
func NewStore(api API) *Store {
	return &Store{api: api}
}

// Transactions returns the cached history, fetching it on first use.
func (s *Store) Transactions(ctx context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	if s.fetched {
		out := make([]core.Transaction, len(s.items))
		copy(out, s.items)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	items, err := s.api.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = items
	s.fetched = true
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	s.mu.Unlock()
	return out, nil
}

// Add creates a transaction and prepends the server's copy locally,
// matching the newest-first order of the list endpoint.
func (s *Store) Add(ctx context.Context, tx NewTransaction) (core.Transaction, error) {
	created, err := s.api.CreateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	if s.fetched {
		s.items = append([]core.Transaction{created}, s.items...)
	}
	s.mu.Unlock()
	return created, nil
}

// Update applies a partial update and replaces the local copy in place.
func (s *Store) Update(ctx context.Context, id string, patch TransactionPatch) (core.Transaction, error) {
	updated, err := s.api.UpdateTransaction(ctx, id, patch)
	if err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Remove deletes a transaction and drops it from the local copy.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID.Hex() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Invalidate discards the local copy; the next read refetches.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.items = nil
	s.fetched = false
	s.mu.Unlock()
}
