package client

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

type fakeAPI struct {
	items     []core.Transaction
	listCalls int
}

func (f *fakeAPI) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	f.listCalls++
	out := make([]core.Transaction, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeAPI) CreateTransaction(ctx context.Context, tx NewTransaction) (core.Transaction, error) {
	created := core.Transaction{
		ID:       primitive.NewObjectID(),
		UserID:   "uid-1",
		Category: tx.Category,
		Amount:   tx.Amount,
		Type:     core.TransactionType(tx.Type),
		Date:     tx.Date,
	}
	f.items = append([]core.Transaction{created}, f.items...)
	return created, nil
}

func (f *fakeAPI) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (core.Transaction, error) {
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			if patch.Amount != nil {
				f.items[i].Amount = *patch.Amount
			}
			if patch.Category != nil {
				f.items[i].Category = *patch.Category
			}
			return f.items[i], nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (f *fakeAPI) DeleteTransaction(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func seedAPI(n int) *fakeAPI {
	api := &fakeAPI{}
	for i := 0; i < n; i++ {
		api.items = append(api.items, core.Transaction{
			ID:       primitive.NewObjectID(),
			UserID:   "uid-1",
			Category: "Food",
			Amount:   float64(10 * (i + 1)),
			Type:     core.Expense,
			Date:     time.Now(),
		})
	}
	return api
}

func TestStore_FetchesOnce(t *testing.T) {
	api := seedAPI(3)
	store := NewStore(api)
	ctx := context.Background()

	first, err := store.Transactions(ctx)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("len = %d, want 3", len(first))
	}

	store.Transactions(ctx)
	store.Transactions(ctx)
	if api.listCalls != 1 {
		t.Errorf("listCalls = %d, want 1", api.listCalls)
	}
}

func TestStore_AddPrepends(t *testing.T) {
	api := seedAPI(2)
	store := NewStore(api)
	ctx := context.Background()

	store.Transactions(ctx)
	created, err := store.Add(ctx, NewTransaction{Category: "Rent", Amount: 1200, Type: "expense", Date: time.Now()})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	items, _ := store.Transactions(ctx)
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].ID != created.ID {
		t.Error("created transaction is not first")
	}
	if api.listCalls != 1 {
		t.Errorf("listCalls = %d, mutation should not refetch", api.listCalls)
	}
}

func TestStore_UpdatePatchesInPlace(t *testing.T) {
	api := seedAPI(2)
	store := NewStore(api)
	ctx := context.Background()

	items, _ := store.Transactions(ctx)
	target := items[1]

	amount := 999.0
	if _, err := store.Update(ctx, target.ID.Hex(), TransactionPatch{Amount: &amount}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	items, _ = store.Transactions(ctx)
	if items[1].Amount != 999 {
		t.Errorf("amount = %v, want 999", items[1].Amount)
	}
}

func TestStore_RemoveDrops(t *testing.T) {
	api := seedAPI(3)
	store := NewStore(api)
	ctx := context.Background()

	items, _ := store.Transactions(ctx)
	if err := store.Remove(ctx, items[0].ID.Hex()); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	items, _ = store.Transactions(ctx)
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
}

func TestStore_InvalidateRefetches(t *testing.T) {
	api := seedAPI(1)
	store := NewStore(api)
	ctx := context.Background()

	store.Transactions(ctx)
	store.Invalidate()
	store.Transactions(ctx)

	if api.listCalls != 2 {
		t.Errorf("listCalls = %d, want 2", api.listCalls)
	}
}
