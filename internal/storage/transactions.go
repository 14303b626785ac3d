package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

// TransactionRepository persists user-owned transactions. Every operation
// filters on the owner's id, so cross-user access has no code path.
type TransactionRepository struct {
	provider CollectionProvider
}

func NewTransactionRepository(provider CollectionProvider) *TransactionRepository {
	return &TransactionRepository{provider: provider}
}

// TransactionUpdate carries the fields of a partial update. Nil fields are
// left untouched.
type TransactionUpdate struct {
	Category *string
	Amount   *float64
	Type     *core.TransactionType
	Date     *time.Time
}

// Validate checks every provided field against the domain rules.
func (u TransactionUpdate) Validate() error {
	if u.Category == nil && u.Amount == nil && u.Type == nil && u.Date == nil {
		return core.ErrEmptyUpdate
	}
	probe := core.Transaction{Category: "x", Amount: 1, Type: core.Expense, Date: time.Now()}
	if u.Category != nil {
		probe.Category = *u.Category
	}
	if u.Amount != nil {
		probe.Amount = *u.Amount
	}
	if u.Type != nil {
		probe.Type = *u.Type
	}
	if u.Date != nil {
		probe.Date = *u.Date
	}
	return probe.Validate()
}

// List returns all of a user's transactions, newest-first by creation time.
func (r *TransactionRepository) List(ctx context.Context, userID string) ([]core.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.provider.Collection(TransactionsCollection).
		Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	transactions := make([]core.Transaction, 0)
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return transactions, nil
}

// ListRecent returns up to limit transactions ordered by date descending,
// the working set the insight summarizer analyzes.
func (r *TransactionRepository) ListRecent(ctx context.Context, userID string, limit int) ([]core.Transaction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.provider.Collection(TransactionsCollection).
		Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}

	transactions := make([]core.Transaction, 0)
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return transactions, nil
}

// Create inserts a transaction attributed to the given owner. The caller's
// id always wins over anything in tx.
func (r *TransactionRepository) Create(ctx context.Context, userID string, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	now := time.Now().UTC()
	tx.ID = primitive.NewObjectID()
	tx.UserID = userID
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := r.provider.Collection(TransactionsCollection).InsertOne(ctx, tx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return core.Transaction{}, core.ErrDuplicateKey
		}
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	return tx, nil
}

// Update applies a partial update to a transaction the user owns. A filter
// matching zero documents, whether the id is absent or owned by someone
// else, reports NotFound.
func (r *TransactionRepository) Update(ctx context.Context, userID, id string, update TransactionUpdate) (core.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.Transaction{}, core.ErrNotFound
	}
	if err := update.Validate(); err != nil {
		return core.Transaction{}, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Amount != nil {
		set["amount"] = *update.Amount
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.Date != nil {
		set["date"] = *update.Date
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tx core.Transaction
	err = r.provider.Collection(TransactionsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid, "userId": userID}, bson.M{"$set": set}, opts).
		Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return core.Transaction{}, core.ErrNotFound
		}
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	return tx, nil
}

// Delete removes a transaction the user owns, with the same ownership
// semantics as Update.
func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrNotFound
	}

	err = r.provider.Collection(TransactionsCollection).
		FindOneAndDelete(ctx, bson.M{"_id": oid, "userId": userID}).
		Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return core.ErrNotFound
		}
		return fmt.Errorf("delete transaction: %w", err)
	}

	return nil
}

type statsRow struct {
	Type  core.TransactionType `bson:"_id"`
	Total float64              `bson:"total"`
	Count int64                `bson:"count"`
}

// Stats aggregates the user's transactions server-side, grouping by type.
// Types with no transactions are simply absent from the grouped result and
// read as zero.
func (r *TransactionRepository) Stats(ctx context.Context, userID string) (core.Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$type",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.provider.Collection(TransactionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return core.Stats{}, fmt.Errorf("aggregate stats: %w", err)
	}

	var rows []statsRow
	if err := cursor.All(ctx, &rows); err != nil {
		return core.Stats{}, fmt.Errorf("decode stats: %w", err)
	}

	var stats core.Stats
	for _, row := range rows {
		switch row.Type {
		case core.Income:
			stats.Income = row.Total
		case core.Expense:
			stats.Expense = row.Total
		}
		stats.TotalTransactions += row.Count
	}

	balance := decimal.NewFromFloat(stats.Income).Sub(decimal.NewFromFloat(stats.Expense))
	stats.Balance, _ = balance.Float64()

	return stats, nil
}
