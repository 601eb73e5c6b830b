package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-advisor/internal/domain"
	"career-advisor/internal/repository"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	user.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (email, password_hash, created_at)
VALUES (?, ?, ?)`,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("insert user: %w", repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, created_at
FROM users
WHERE email = ?`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, created_at
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
