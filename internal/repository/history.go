package repository

import (
	"context"

	"career-advisor/internal/domain"
)

// RecommendationRepository stores saved recommendation snapshots. Every read is
// scoped to one owner.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.SavedRecommendation) (int64, error)
	ListByUser(ctx context.Context, userID int64, order Order) ([]domain.SavedRecommendation, error)
}

// QuizScoreRepository stores graded quiz attempts.
type QuizScoreRepository interface {
	Create(ctx context.Context, score *domain.QuizScore) (int64, error)
	ListByUser(ctx context.Context, userID int64, order Order) ([]domain.QuizScore, error)
}
