package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"career-advisor/internal/domain"
	"career-advisor/internal/events"
	"career-advisor/internal/repository"
)

const minPasswordLength = 8

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	store  repository.Store
	events events.Publisher
	cost   int
}

func NewUserService(store repository.Store, publisher events.Publisher) UserService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &userService{
		store:  store,
		events: publisher,
		cost:   bcrypt.DefaultCost,
	}
}

func (s *userService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		_, err := tx.Users().Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, err
	}

	s.events.Publish(ctx, events.New(events.TypeUserRegistered, user.ID, nil))
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
