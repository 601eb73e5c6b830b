package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"career-advisor/internal/catalog"
	"career-advisor/internal/domain"
	"career-advisor/internal/repository"
)

const (
	highMatchThreshold = 80
	fanaticAttempts    = 5
)

// BadgeService derives achievements from a user's saved history.
type BadgeService interface {
	Badges(ctx context.Context, userID int64) ([]domain.Badge, error)
}

type badgeService struct {
	catalog *catalog.Catalog
	store   repository.Store
}

func NewBadgeService(c *catalog.Catalog, store repository.Store) BadgeService {
	return &badgeService{catalog: c, store: store}
}

func (s *badgeService) Badges(ctx context.Context, userID int64) ([]domain.Badge, error) {
	var (
		saves  []domain.SavedRecommendation
		scores []domain.QuizScore
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		if saves, err = tx.Recommendations().ListByUser(ctx, userID, repository.OldestFirst); err != nil {
			return err
		}
		scores, err = tx.QuizScores().ListByUser(ctx, userID, repository.OldestFirst)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.evaluate(saves, scores), nil
}

// evaluate applies the badge rules in a fixed order. Both inputs are oldest first.
func (s *badgeService) evaluate(saves []domain.SavedRecommendation, scores []domain.QuizScore) []domain.Badge {
	badges := []domain.Badge{}

	if len(saves) > 0 {
		badges = append(badges, domain.Badge{
			ID:       "first_save",
			Name:     "First Save",
			EarnedAt: saves[0].CreatedAt,
		})
	}

	for _, rec := range saves {
		if topMatchScore(rec.Payload) >= highMatchThreshold {
			badges = append(badges, domain.Badge{
				ID:       "top_match",
				Name:     "High Match (>=80%)",
				EarnedAt: rec.CreatedAt,
			})
			break
		}
	}

	for _, attempt := range scores {
		bank, ok := s.catalog.Questions(attempt.Topic)
		if !ok || len(bank) == 0 {
			continue
		}
		if attempt.Score == len(bank) {
			badges = append(badges, domain.Badge{
				ID:       "quiz_master_" + strings.ToLower(attempt.Topic),
				Name:     fmt.Sprintf("Quiz Master (%s)", attempt.Topic),
				EarnedAt: attempt.CreatedAt,
			})
			break
		}
	}

	if len(scores) >= fanaticAttempts {
		badges = append(badges, domain.Badge{
			ID:       "quiz_fanatic",
			Name:     "Quiz Fanatic (5+ quizzes taken)",
			EarnedAt: scores[len(scores)-1].CreatedAt,
		})
	}

	for _, rec := range saves {
		if strings.Contains(rec.Title, "Resume") {
			badges = append(badges, domain.Badge{
				ID:       "resume_ready",
				Name:     "Resume Ready (uploaded & enhanced)",
				EarnedAt: rec.CreatedAt,
			})
			break
		}
	}

	return badges
}

// topMatchScore reads top_careers[0].match_score from a saved payload, or -1
// when the payload has no such field.
func topMatchScore(payload json.RawMessage) float64 {
	var doc struct {
		TopCareers []struct {
			MatchScore *float64 `json:"match_score"`
		} `json:"top_careers"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return -1
	}
	if len(doc.TopCareers) == 0 || doc.TopCareers[0].MatchScore == nil {
		return -1
	}
	return *doc.TopCareers[0].MatchScore
}
