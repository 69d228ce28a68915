package study

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
	"github.com/heartmarshall/wordpath/pkg/ctxutil"
)

// Registry keeps live sessions addressable by ID. An identified learner has
// at most one live session; registering a new one replaces the old. Guest
// sessions are reachable by anyone holding their ID.
type Registry struct {
	idleTTL time.Duration
	clock   clock

	mu        sync.Mutex
	sessions  map[uuid.UUID]*Session
	byLearner map[uuid.UUID]uuid.UUID
}

// NewRegistry creates an empty registry. Sessions idle for longer than
// idleTTL are dropped on the next Put.
func NewRegistry(idleTTL time.Duration, c clock) *Registry {
	if c == nil {
		c = realClock{}
	}
	return &Registry{
		idleTTL:   idleTTL,
		clock:     c,
		sessions:  make(map[uuid.UUID]*Session),
		byLearner: make(map[uuid.UUID]uuid.UUID),
	}
}

// Put registers s, replacing any live session of the same learner.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()

	if learnerID, ok := s.LearnerID(); ok {
		if prev, found := r.byLearner[learnerID]; found {
			delete(r.sessions, prev)
		}
		r.byLearner[learnerID] = s.ID()
	}
	r.sessions[s.ID()] = s
}

// Get returns the session with id if the caller in ctx may see it.
// Sessions owned by another learner are reported as not found.
func (r *Registry) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()

	if !ok || !visibleTo(ctx, s) {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// Drop removes the session with id if the caller in ctx may see it.
func (r *Registry) Drop(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || !visibleTo(ctx, s) {
		return domain.ErrNotFound
	}
	r.removeLocked(s)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) sweepLocked() {
	cutoff := r.clock.Now().Add(-r.idleTTL)
	for _, s := range r.sessions {
		if s.lastActivity().Before(cutoff) {
			r.removeLocked(s)
		}
	}
}

func (r *Registry) removeLocked(s *Session) {
	delete(r.sessions, s.ID())
	if learnerID, ok := s.LearnerID(); ok && r.byLearner[learnerID] == s.ID() {
		delete(r.byLearner, learnerID)
	}
}

func visibleTo(ctx context.Context, s *Session) bool {
	owner, identified := s.LearnerID()
	if !identified {
		return true
	}
	caller, ok := ctxutil.LearnerIDFromCtx(ctx)
	return ok && caller == owner
}
