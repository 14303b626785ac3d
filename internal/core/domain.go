package core

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	// TransactionType carries the direction of a transaction. Amounts are
	// stored as positive magnitudes; the type decides the sign.
	TransactionType string

	// Preferences holds per-user display settings.
	Preferences struct {
		Currency string `bson:"currency" json:"currency"`
		DarkMode bool   `bson:"darkMode" json:"darkMode"`
	}

	// User is the local record for an externally authenticated account,
	// keyed by the identity provider's subject id.
	User struct {
		ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
		FirebaseUID string             `bson:"firebaseUid" json:"firebaseUid"`
		Email       string             `bson:"email" json:"email"`
		DisplayName string             `bson:"displayName" json:"displayName"`
		PhotoURL    string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
		Preferences Preferences        `bson:"preferences" json:"preferences"`
		CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
		UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	}

	// Transaction is a single income or expense record owned by one user.
	Transaction struct {
		ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
		UserID    string             `bson:"userId" json:"userId"`
		Category  string             `bson:"category" json:"category"`
		Amount    float64            `bson:"amount" json:"amount"`
		Type      TransactionType    `bson:"type" json:"type"`
		Date      time.Time          `bson:"date" json:"date"`
		CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
		UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
	}

	// Stats is the aggregate view over a user's transaction set.
	Stats struct {
		Income            float64 `json:"income"`
		Expense           float64 `json:"expense"`
		Balance           float64 `json:"balance"`
		TotalTransactions int64   `json:"totalTransactions"`
	}
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidType     = errors.New("type must be income or expense")
	ErrEmptyCategory   = errors.New("empty category")
	ErrCategoryTooLong = errors.New("category too long (max 100 characters)")
	ErrInvalidDate     = errors.New("date cannot be zero")
	ErrEmptyUpdate     = errors.New("no fields to update")
)

// DefaultPreferences returns the preferences applied when a user record is
// first provisioned.
func DefaultPreferences() Preferences {
	return Preferences{Currency: "INR", DarkMode: false}
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (tx Transaction) Validate() error {
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if len(tx.Category) > 100 {
		return ErrCategoryTooLong
	}
	if tx.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	if tx.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Signed returns the amount with the sign implied by the type.
func (tx Transaction) Signed() float64 {
	if tx.Type == Expense {
		return -tx.Amount
	}
	return tx.Amount
}

// MonthKey returns the transaction's calendar month as "YYYY-MM".
func (tx Transaction) MonthKey() string {
	return tx.Date.Format("2006-01")
}
