package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"career-advisor/internal/domain"
	"career-advisor/internal/repository"
)

type RecommendationRepository struct {
	db DBTX
}

func NewRecommendationRepository(db DBTX) repository.RecommendationRepository {
	return &RecommendationRepository{db: db}
}

func (r *RecommendationRepository) Create(ctx context.Context, rec *domain.SavedRecommendation) (int64, error) {
	rec.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO saved_recommendations (user_id, title, data, created_at)
VALUES (?, ?, ?, ?)`,
		rec.UserID,
		rec.Title,
		string(rec.Payload),
		rec.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert recommendation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recommendation last insert id: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (r *RecommendationRepository) ListByUser(ctx context.Context, userID int64, order repository.Order) ([]domain.SavedRecommendation, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, title, data, created_at
FROM saved_recommendations
WHERE user_id = ?
ORDER BY `+orderClause(order), userID)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []domain.SavedRecommendation
	for rows.Next() {
		var (
			rec  domain.SavedRecommendation
			data string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &data, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		rec.Payload = json.RawMessage(data)
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func orderClause(order repository.Order) string {
	if order == repository.OldestFirst {
		return "created_at ASC, id ASC"
	}
	return "created_at DESC, id DESC"
}
