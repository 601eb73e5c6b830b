package sqlite

import (
	"context"
	"database/sql"

	"career-advisor/internal/repository"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with it, and commits on success or rolls
// back on error or panic. Panics are rethrown.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// Store is the sqlite implementation of repository.Store.
type Store struct {
	db *sql.DB
	q  DBTX
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() repository.UserRepository {
	return NewUserRepository(s.q)
}

func (s *Store) Recommendations() repository.RecommendationRepository {
	return NewRecommendationRepository(s.q)
}

func (s *Store) QuizScores() repository.QuizScoreRepository {
	return NewQuizScoreRepository(s.q)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if s.db == nil {
		// already inside a transaction
		return fn(ctx, s)
	}
	return WithTx(ctx, s.db, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, &Store{q: tx})
	})
}

var _ repository.Store = (*Store)(nil)
