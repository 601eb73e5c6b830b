package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"career-advisor/internal/catalog"
	"career-advisor/internal/domain"
	"career-advisor/internal/events"
	"career-advisor/internal/repository"
)

// QuizService serves questions from the static bank and records graded attempts.
type QuizService interface {
	Topics() []string
	Questions(topic string, count int) ([]domain.QuizQuestion, error)
	Submit(ctx context.Context, userID int64, topic string, answers map[string]string) (domain.QuizResult, error)
	History(ctx context.Context, userID int64) ([]domain.QuizScore, error)
}

type quizService struct {
	catalog *catalog.Catalog
	store   repository.Store
	events  events.Publisher
	perm    func(n int) []int
}

func NewQuizService(c *catalog.Catalog, store repository.Store, publisher events.Publisher) QuizService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &quizService{
		catalog: c,
		store:   store,
		events:  publisher,
		perm:    rand.Perm,
	}
}

func (s *quizService) Topics() []string {
	return s.catalog.Topics()
}

// Questions draws min(count, available) distinct questions at random. Each
// question carries its bank index, which is the key Submit grades against.
func (s *quizService) Questions(topic string, count int) ([]domain.QuizQuestion, error) {
	bank, ok := s.catalog.Questions(topic)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTopic, topic)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative", domain.ErrInvalidInput)
	}
	if count > len(bank) {
		count = len(bank)
	}

	picked := s.perm(len(bank))[:count]
	out := make([]domain.QuizQuestion, 0, count)
	for _, idx := range picked {
		q := bank[idx]
		out = append(out, domain.QuizQuestion{
			Index:    idx,
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return out, nil
}

// Submit grades answers keyed by bank index ("0", "1", ...) against the whole
// bank in canonical order, independent of which questions were served.
func (s *quizService) Submit(ctx context.Context, userID int64, topic string, answers map[string]string) (domain.QuizResult, error) {
	bank, ok := s.catalog.Questions(topic)
	if !ok {
		return domain.QuizResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownTopic, topic)
	}

	score := 0
	for i, q := range bank {
		if got, ok := answers[strconv.Itoa(i)]; ok && got == q.Answer {
			score++
		}
	}

	record := &domain.QuizScore{
		UserID: userID,
		Topic:  topic,
		Score:  score,
		Total:  len(bank),
	}
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		_, err := tx.QuizScores().Create(ctx, record)
		return err
	})
	if err != nil {
		return domain.QuizResult{}, err
	}

	s.events.Publish(ctx, events.New(events.TypeQuizSubmitted, userID, map[string]any{
		"topic": topic,
		"score": score,
		"total": len(bank),
	}))
	return domain.QuizResult{Topic: topic, Score: score, Total: len(bank)}, nil
}

func (s *quizService) History(ctx context.Context, userID int64) ([]domain.QuizScore, error) {
	return s.store.QuizScores().ListByUser(ctx, userID, repository.NewestFirst)
}
