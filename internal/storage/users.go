package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
)

// UserRepository persists local user records keyed by the identity
// provider's subject id.
type UserRepository struct {
	provider CollectionProvider
}

func NewUserRepository(provider CollectionProvider) *UserRepository {
	return &UserRepository{provider: provider}
}

// GetOrCreate resolves the local user for a verified subject id, creating
// the record on first sight. The unique index on firebaseUid makes repeated
// calls resolve to the same record.
func (r *UserRepository) GetOrCreate(ctx context.Context, u core.User) (core.User, error) {
	now := time.Now().UTC()

	filter := bson.M{"firebaseUid": u.FirebaseUID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"firebaseUid": u.FirebaseUID,
			"email":       u.Email,
			"displayName": u.DisplayName,
			"photoURL":    u.PhotoURL,
			"preferences": core.DefaultPreferences(),
			"createdAt":   now,
			"updatedAt":   now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user core.User
	err := r.provider.Collection(UsersCollection).
		FindOneAndUpdate(ctx, filter, update, opts).
		Decode(&user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return core.User{}, core.ErrDuplicateKey
		}
		return core.User{}, fmt.Errorf("upsert user: %w", err)
	}

	return user, nil
}

// FindByUID looks up a user by subject id.
func (r *UserRepository) FindByUID(ctx context.Context, uid string) (core.User, error) {
	var user core.User
	err := r.provider.Collection(UsersCollection).
		FindOne(ctx, bson.M{"firebaseUid": uid}).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return core.User{}, core.ErrNotFound
		}
		return core.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
