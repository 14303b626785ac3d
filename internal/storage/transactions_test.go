package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

// fakeCollection implements DataStore against canned documents.
type fakeCollection struct {
	findDocs  []interface{}
	findErr   error
	singleDoc interface{}
	singleErr error
	aggDocs   []interface{}
	aggErr    error

	inserted   []interface{}
	insertErr  error
	lastFilter interface{}
	lastUpdate interface{}
}

func (f *fakeCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, document)
	return &mongo.InsertOneResult{}, nil
}

func (f *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	f.lastFilter = filter
	if f.findErr != nil {
		return nil, f.findErr
	}
	return mongo.NewCursorFromDocuments(f.findDocs, nil, nil)
}

func (f *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	f.lastFilter = filter
	return f.single()
}

func (f *fakeCollection) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult {
	f.lastFilter = filter
	f.lastUpdate = update
	return f.single()
}

func (f *fakeCollection) FindOneAndDelete(ctx context.Context, filter interface{}, opts ...*options.FindOneAndDeleteOptions) *mongo.SingleResult {
	f.lastFilter = filter
	return f.single()
}

func (f *fakeCollection) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	if f.aggErr != nil {
		return nil, f.aggErr
	}
	return mongo.NewCursorFromDocuments(f.aggDocs, nil, nil)
}

func (f *fakeCollection) single() *mongo.SingleResult {
	doc := f.singleDoc
	if doc == nil {
		doc = bson.D{}
	}
	return mongo.NewSingleResultFromDocument(doc, f.singleErr, nil)
}

type fakeProvider struct {
	col *fakeCollection
}

func (p *fakeProvider) Collection(name string) DataStore { return p.col }

func newRepo(col *fakeCollection) *TransactionRepository {
	return NewTransactionRepository(&fakeProvider{col: col})
}

func TestTransactionRepository_Create(t *testing.T) {
	col := &fakeCollection{}
	repo := newRepo(col)

	tx := core.Transaction{
		UserID:   "attacker-supplied",
		Category: "Food",
		Amount:   120,
		Type:     core.Expense,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	created, err := repo.Create(context.Background(), "caller-uid", tx)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.UserID != "caller-uid" {
		t.Errorf("owner id = %q, want the authenticated caller's id", created.UserID)
	}
	if created.ID.IsZero() {
		t.Error("Create() should assign an id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Create() should stamp created/updated times")
	}
	if len(col.inserted) != 1 {
		t.Fatalf("inserted %d documents, want 1", len(col.inserted))
	}
}

func TestTransactionRepository_Create_Invalid(t *testing.T) {
	repo := newRepo(&fakeCollection{})

	_, err := repo.Create(context.Background(), "uid", core.Transaction{
		Category: "Food",
		Amount:   -5,
		Type:     core.Expense,
		Date:     time.Now(),
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("Create() = %v, want ErrInvalidAmount", err)
	}
}

func TestTransactionRepository_Update_NotFound(t *testing.T) {
	amount := 50.0
	update := TransactionUpdate{Amount: &amount}

	t.Run("malformed id", func(t *testing.T) {
		repo := newRepo(&fakeCollection{})
		_, err := repo.Update(context.Background(), "uid", "not-a-hex-id", update)
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("Update() = %v, want ErrNotFound", err)
		}
	})

	t.Run("zero matched documents", func(t *testing.T) {
		repo := newRepo(&fakeCollection{singleErr: mongo.ErrNoDocuments})
		_, err := repo.Update(context.Background(), "uid", primitive.NewObjectID().Hex(), update)
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("Update() = %v, want ErrNotFound", err)
		}
	})
}

func TestTransactionRepository_Update(t *testing.T) {
	oid := primitive.NewObjectID()
	col := &fakeCollection{singleDoc: core.Transaction{
		ID:       oid,
		UserID:   "uid",
		Category: "Rent",
		Amount:   9000,
		Type:     core.Expense,
		Date:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}}
	repo := newRepo(col)

	amount := 9000.0
	tx, err := repo.Update(context.Background(), "uid", oid.Hex(), TransactionUpdate{Amount: &amount})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if tx.Amount != 9000 {
		t.Errorf("updated amount = %v, want 9000", tx.Amount)
	}

	filter, ok := col.lastFilter.(bson.M)
	if !ok {
		t.Fatalf("filter type = %T", col.lastFilter)
	}
	if filter["userId"] != "uid" {
		t.Error("update filter must be owner-scoped")
	}
}

func TestTransactionUpdate_Validate(t *testing.T) {
	if err := (TransactionUpdate{}).Validate(); !errors.Is(err, core.ErrEmptyUpdate) {
		t.Errorf("empty update = %v, want %v", err, core.ErrEmptyUpdate)
	}

	bad := -1.0
	if err := (TransactionUpdate{Amount: &bad}).Validate(); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("negative amount update = %v, want ErrInvalidAmount", err)
	}

	badType := core.TransactionType("transfer")
	if err := (TransactionUpdate{Type: &badType}).Validate(); !errors.Is(err, core.ErrInvalidType) {
		t.Errorf("unknown type update = %v, want ErrInvalidType", err)
	}

	good := 10.0
	if err := (TransactionUpdate{Amount: &good}).Validate(); err != nil {
		t.Errorf("valid update rejected: %v", err)
	}
}

func TestTransactionRepository_Delete_NotFound(t *testing.T) {
	repo := newRepo(&fakeCollection{singleErr: mongo.ErrNoDocuments})
	err := repo.Delete(context.Background(), "uid", primitive.NewObjectID().Hex())
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Delete() = %v, want ErrNotFound", err)
	}
}

func TestTransactionRepository_Stats(t *testing.T) {
	col := &fakeCollection{aggDocs: []interface{}{
		bson.M{"_id": "income", "total": 8000.0, "count": 2},
		bson.M{"_id": "expense", "total": 3000.0, "count": 3},
	}}
	repo := newRepo(col)

	stats, err := repo.Stats(context.Background(), "uid")
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.Income != 8000 || stats.Expense != 3000 {
		t.Errorf("totals = %+v", stats)
	}
	if stats.Balance != 5000 {
		t.Errorf("balance = %v, want income - expense = 5000", stats.Balance)
	}
	if stats.TotalTransactions != 5 {
		t.Errorf("count = %d, want 5", stats.TotalTransactions)
	}
}

func TestTransactionRepository_Stats_Empty(t *testing.T) {
	repo := newRepo(&fakeCollection{})

	stats, err := repo.Stats(context.Background(), "uid")
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.Income != 0 || stats.Expense != 0 || stats.Balance != 0 || stats.TotalTransactions != 0 {
		t.Errorf("empty set stats = %+v, want all zeros", stats)
	}
}

func TestTransactionRepository_List(t *testing.T) {
	col := &fakeCollection{findDocs: []interface{}{
		core.Transaction{UserID: "uid", Category: "Food", Amount: 10, Type: core.Expense, Date: time.Now()},
		core.Transaction{UserID: "uid", Category: "Salary", Amount: 5000, Type: core.Income, Date: time.Now()},
	}}
	repo := newRepo(col)

	list, err := repo.List(context.Background(), "uid")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}

	filter, ok := col.lastFilter.(bson.M)
	if !ok || filter["userId"] != "uid" {
		t.Error("list filter must be owner-scoped")
	}
}
