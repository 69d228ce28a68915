package study

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
	"github.com/heartmarshall/wordpath/pkg/ctxutil"
)

var testNow = time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, items itemRepo, progress progressRepo) (*Service, *fakeClock) {
	t.Helper()

	svc, err := NewService(discardLogger(), items, progress, domain.DefaultSessionConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	c := &fakeClock{t: testNow}
	svc.clock = c
	svc.sessions = NewRegistry(svc.cfg.IdleTTL, c)
	return svc, c
}

func learnerCtx(id uuid.UUID) context.Context {
	return ctxutil.WithLearnerID(context.Background(), id)
}

func makeItems(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{
			ID:         uuid.New(),
			Ordinal:    int64(i + 1),
			Headword:   fmt.Sprintf("word-%02d", i+1),
			Definition: "definition",
			Book:       1,
			Unit:       1,
		}
	}
	return items
}

func makeDue(learnerID uuid.UUID, levels ...int) []domain.DueProgress {
	out := make([]domain.DueProgress, len(levels))
	for i, level := range levels {
		item := domain.Item{ID: uuid.New(), Ordinal: int64(100 + i), Headword: fmt.Sprintf("due-%02d", i)}
		out[i] = domain.DueProgress{
			Item: item,
			Progress: domain.Progress{
				LearnerID:        learnerID,
				ItemID:           item.ID,
				FamiliarityLevel: level,
				EaseFactor:       2.5,
				IntervalDays:     1,
				NextReviewAt:     testNow.Add(-time.Duration(len(levels)-i) * time.Hour),
			},
		}
	}
	return out
}

func staticItems(items []domain.Item) *itemRepoMock {
	return &itemRepoMock{
		ListByScopeFunc: func(ctx context.Context, scope domain.Scope) ([]domain.Item, error) {
			return items, nil
		},
	}
}

func staticDue(due []domain.DueProgress) *progressRepoMock {
	return &progressRepoMock{
		ListDueFunc: func(ctx context.Context, learnerID uuid.UUID, asOf time.Time, limit int) ([]domain.DueProgress, error) {
			return due, nil
		},
		UpsertFunc: func(ctx context.Context, p *domain.Progress) error {
			return nil
		},
	}
}

func queueTypes(s *Session) []domain.ExerciseType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ExerciseType, len(s.queue))
	for i, ex := range s.queue {
		out[i] = ex.Type
	}
	return out
}
