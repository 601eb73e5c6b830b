package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"career-advisor/internal/domain"
	"career-advisor/internal/events"
	"career-advisor/internal/repository"
)

// RecommendationService saves and lists recommendation snapshots for one owner.
type RecommendationService interface {
	Save(ctx context.Context, userID int64, title string, payload json.RawMessage) (*domain.SavedRecommendation, error)
	ListHistory(ctx context.Context, userID int64) ([]domain.SavedRecommendation, error)
}

type recommendationService struct {
	store  repository.Store
	events events.Publisher
}

func NewRecommendationService(store repository.Store, publisher events.Publisher) RecommendationService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &recommendationService{store: store, events: publisher}
}

func (s *recommendationService) Save(ctx context.Context, userID int64, title string, payload json.RawMessage) (*domain.SavedRecommendation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(payload) == 0 || !json.Valid(payload) {
		return nil, fmt.Errorf("%w: payload must be valid JSON", domain.ErrInvalidInput)
	}

	rec := &domain.SavedRecommendation{
		UserID:  userID,
		Title:   title,
		Payload: append(json.RawMessage(nil), payload...),
	}
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		_, err := tx.Recommendations().Create(ctx, rec)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.New(events.TypeRecommendationSaved, userID, map[string]any{
		"id":    rec.ID,
		"title": rec.Title,
	}))
	return rec, nil
}

func (s *recommendationService) ListHistory(ctx context.Context, userID int64) ([]domain.SavedRecommendation, error) {
	return s.store.Recommendations().ListByUser(ctx, userID, repository.NewestFirst)
}
