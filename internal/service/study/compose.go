package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
	"github.com/heartmarshall/wordpath/pkg/ctxutil"
)

// BuildSession composes a new session queue for the learner in ctx, or for a
// guest when ctx carries no learner. Due records come first, then new words.
// Guests always get every scope item as a new word, whatever the mode.
// Any fetch failure aborts the build; no partial queue is returned.
func (s *Service) BuildSession(ctx context.Context, input BuildSessionInput) (*Session, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	mode := input.mode()
	learnerID, identified := ctxutil.LearnerIDFromCtx(ctx)
	now := s.clock.Now()

	queue := make([]domain.Exercise, 0, s.cfg.MaxQueueLength)

	if identified && mode.PullsDue() {
		due, err := s.progress.ListDue(ctx, learnerID, now, s.cfg.DuePullLimit)
		if err != nil {
			return nil, fmt.Errorf("list due progress: %w", err)
		}
		for _, d := range due {
			p := d.Progress
			queue = append(queue, domain.Exercise{
				Item:     d.Item,
				Type:     exerciseTypeFor(p.FamiliarityLevel),
				Progress: &p,
			})
		}
	}

	if !identified || s.wantsNewWords(mode, len(queue)) {
		items, err := s.items.ListByScope(ctx, input.Scope)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		limit := s.cfg.MaxQueueLength
		if !identified {
			limit = 2 * len(items)
		}
		queue = appendNewWords(queue, items, limit)
	}

	session := newSession(sessionParams{
		id:         uuid.New(),
		learnerID:  learnerID,
		identified: identified,
		mode:       mode,
		scope:      input.Scope,
		queue:      queue,
		progress:   s.progress,
		clock:      s.clock,
		log:        s.log,
	})

	s.log.InfoContext(ctx, "session built",
		slog.String("session_id", session.ID().String()),
		slog.String("mode", mode.String()),
		slog.Bool("guest", !identified),
		slog.Int("book", input.Scope.Book),
		slog.Int("unit", input.Scope.Unit),
		slog.Int("queue_length", len(queue)),
	)

	return session, nil
}

func (s *Service) wantsNewWords(mode domain.SessionMode, queued int) bool {
	if queued >= s.cfg.MaxQueueLength {
		return false
	}
	switch mode {
	case domain.SessionModeLearn:
		return true
	case domain.SessionModeSmart:
		return queued < s.cfg.SmartTopUpThreshold
	}
	return false
}

// appendNewWords adds a preview then a recognition entry per item, in catalog
// order, while the whole pair fits under limit.
func appendNewWords(queue []domain.Exercise, items []domain.Item, limit int) []domain.Exercise {
	for _, item := range items {
		if len(queue)+2 > limit {
			break
		}
		queue = append(queue,
			domain.Exercise{Item: item, Type: domain.ExerciseTypePreview, IsNew: true},
			domain.Exercise{Item: item, Type: domain.ExerciseTypeRecognition, IsNew: true},
		)
	}
	return queue
}

// exerciseTypeFor picks the retrieval difficulty for a due item by familiarity tier.
func exerciseTypeFor(level int) domain.ExerciseType {
	switch {
	case level >= 5:
		return domain.ExerciseTypeProduction
	case level >= 2:
		return domain.ExerciseTypeRecall
	default:
		return domain.ExerciseTypeRecognition
	}
}
