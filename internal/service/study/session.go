package study

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
)

// SubmitResult describes what a submission did.
type SubmitResult struct {
	Outcome domain.SubmitOutcome
	// Progress is the record produced by the scheduler. Nil for previews and
	// guest sessions.
	Progress *domain.Progress
	// PersistErr is set when the progress write failed. The session still
	// advanced.
	PersistErr error
	// View is the session state right after this submission.
	View View
}

// View is a consistent snapshot of a session.
type View struct {
	ID       uuid.UUID
	Mode     domain.SessionMode
	Scope    domain.Scope
	Guest    bool
	Position int
	Total    int
	Current  *domain.Exercise
	Stats    domain.SessionStats
	Complete bool
}

// Session is a live practice session: an ordered queue consumed strictly in
// order, plus session-local statistics.
type Session struct {
	id         uuid.UUID
	learnerID  uuid.UUID
	identified bool
	mode       domain.SessionMode
	scope      domain.Scope
	progress   progressRepo
	clock      clock
	log        *slog.Logger

	mu     sync.Mutex
	queue  []domain.Exercise
	cursor int
	stats  domain.SessionStats
	// graded holds the latest record written in this session per item, so a
	// repeated item builds on its own earlier grade.
	graded map[uuid.UUID]domain.Progress

	// touchedAt is read by the registry sweep without taking mu.
	touchedAt atomic.Int64
}

type sessionParams struct {
	id         uuid.UUID
	learnerID  uuid.UUID
	identified bool
	mode       domain.SessionMode
	scope      domain.Scope
	queue      []domain.Exercise
	progress   progressRepo
	clock      clock
	log        *slog.Logger
}

func newSession(p sessionParams) *Session {
	s := &Session{
		id:         p.id,
		learnerID:  p.learnerID,
		identified: p.identified,
		mode:       p.mode,
		scope:      p.scope,
		progress:   p.progress,
		clock:      p.clock,
		log:        p.log,
		queue:      p.queue,
		graded:     make(map[uuid.UUID]domain.Progress),
	}
	s.touchedAt.Store(p.clock.Now().UnixNano())
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// LearnerID returns the owning learner, or false for a guest session.
func (s *Session) LearnerID() (uuid.UUID, bool) { return s.learnerID, s.identified }

func (s *Session) Mode() domain.SessionMode { return s.mode }

func (s *Session) Scope() domain.Scope { return s.scope }

// Current returns the exercise at the cursor, or false once the session is complete.
func (s *Session) Current() (domain.Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.queue) {
		return domain.Exercise{}, false
	}
	return s.queue[s.cursor], true
}

// Stats returns a snapshot of the session statistics.
func (s *Session) Stats() domain.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Position returns the cursor and the queue length.
func (s *Session) Position() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, len(s.queue)
}

// Complete reports whether every entry has been submitted.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor >= len(s.queue)
}

// View returns position, current exercise and statistics taken under one lock.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		ID:       s.id,
		Mode:     s.mode,
		Scope:    s.scope,
		Guest:    !s.identified,
		Position: s.cursor,
		Total:    len(s.queue),
		Stats:    s.stats,
		Complete: s.cursor >= len(s.queue),
	}
	if !v.Complete {
		ex := s.queue[s.cursor]
		v.Current = &ex
	}
	return v
}

// Submit grades the current exercise and advances the cursor.
//
// Previews advance without touching statistics or progress. Graded entries go
// through the scheduler and are persisted for identified learners; a failed
// write is logged and reported in the result but never holds the session back.
func (s *Session) Submit(ctx context.Context, grade domain.Grade) (SubmitResult, error) {
	if err := validateGrade(grade); err != nil {
		return SubmitResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.queue) {
		return SubmitResult{}, domain.ErrSessionComplete
	}

	now := s.clock.Now()
	ex := s.queue[s.cursor]
	var res SubmitResult

	if ex.Type.IsGraded() {
		if s.identified {
			next, err := ApplyReview(s.baseProgress(ex), grade, now)
			if err != nil {
				return SubmitResult{}, err
			}
			s.graded[ex.Item.ID] = next
			res.Progress = &next

			if err := s.progress.Upsert(ctx, &next); err != nil {
				res.PersistErr = err
				s.log.WarnContext(ctx, "progress not saved",
					slog.String("session_id", s.id.String()),
					slog.String("item_id", ex.Item.ID.String()),
					slog.String("error", err.Error()),
				)
			}
		}

		if grade.IsCorrect() {
			s.stats.Correct++
			if ex.IsNew {
				s.stats.Learned++
			}
		} else {
			s.stats.Incorrect++
		}
	}

	s.cursor++
	s.touchedAt.Store(now.UnixNano())

	res.Outcome = domain.SubmitOutcomeAdvanced
	if s.cursor >= len(s.queue) {
		res.Outcome = domain.SubmitOutcomeComplete
		s.log.InfoContext(ctx, "session complete",
			slog.String("session_id", s.id.String()),
			slog.Int("correct", s.stats.Correct),
			slog.Int("incorrect", s.stats.Incorrect),
			slog.Int("learned", s.stats.Learned),
		)
	}
	res.View = s.viewLocked()
	return res, nil
}

// baseProgress returns the record a grade applies to: an earlier grade of the
// same item in this session, else the build-time snapshot, else defaults.
func (s *Session) baseProgress(ex domain.Exercise) domain.Progress {
	if p, ok := s.graded[ex.Item.ID]; ok {
		return p
	}
	if ex.Progress != nil {
		return *ex.Progress
	}
	return domain.NewProgress(s.learnerID, ex.Item.ID)
}

func (s *Session) lastActivity() time.Time {
	return time.Unix(0, s.touchedAt.Load())
}
