package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"career-advisor/internal/catalog"
	"career-advisor/internal/domain"
	"career-advisor/internal/events"
	"career-advisor/internal/repository/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db, nil))
	return sqlite.NewStore(db)
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func newUsers(store *sqlite.Store, pub events.Publisher) UserService {
	svc := NewUserService(store, pub)
	svc.(*userService).cost = bcrypt.MinCost
	return svc
}

func registerUser(t *testing.T, store *sqlite.Store, email string) *domain.User {
	t.Helper()
	u, err := newUsers(store, nil).Register(context.Background(), email, "password123")
	require.NoError(t, err)
	return u
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingPublisher) Close() error { return nil }

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}
