package sqlite

import (
	"context"
	"fmt"
	"time"

	"career-advisor/internal/domain"
	"career-advisor/internal/repository"
)

type QuizScoreRepository struct {
	db DBTX
}

func NewQuizScoreRepository(db DBTX) repository.QuizScoreRepository {
	return &QuizScoreRepository{db: db}
}

func (r *QuizScoreRepository) Create(ctx context.Context, score *domain.QuizScore) (int64, error) {
	score.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_scores (user_id, topic, score, total, created_at)
VALUES (?, ?, ?, ?, ?)`,
		score.UserID,
		score.Topic,
		score.Score,
		score.Total,
		score.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert quiz score: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quiz score last insert id: %w", err)
	}
	score.ID = id
	return id, nil
}

func (r *QuizScoreRepository) ListByUser(ctx context.Context, userID int64, order repository.Order) ([]domain.QuizScore, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, topic, score, total, created_at
FROM quiz_scores
WHERE user_id = ?
ORDER BY `+orderClause(order), userID)
	if err != nil {
		return nil, fmt.Errorf("query quiz scores: %w", err)
	}
	defer rows.Close()

	var scores []domain.QuizScore
	for rows.Next() {
		var s domain.QuizScore
		if err := rows.Scan(&s.ID, &s.UserID, &s.Topic, &s.Score, &s.Total, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz score: %w", err)
		}
		scores = append(scores, s)
	}

	return scores, rows.Err()
}
