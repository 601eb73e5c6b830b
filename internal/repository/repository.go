package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
)

// Order selects the creation-time ordering of history listings.
type Order int

const (
	NewestFirst Order = iota
	OldestFirst
)

// Store vends repositories bound to either the database or an open transaction.
type Store interface {
	Users() UserRepository
	Recommendations() RecommendationRepository
	QuizScores() QuizScoreRepository
	// WithinTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
