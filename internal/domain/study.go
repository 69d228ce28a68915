package domain

import "time"

// SessionConfig bounds how a session queue is composed (pure domain type).
type SessionConfig struct {
	// DuePullLimit caps how many due records are fetched per session.
	DuePullLimit int
	// SmartTopUpThreshold: smart sessions add new words when fewer due
	// records than this were found.
	SmartTopUpThreshold int
	// MaxQueueLength caps the total number of queue entries.
	MaxQueueLength int
	// IdleTTL is how long an untouched live session is kept.
	IdleTTL time.Duration
}

// DefaultSessionConfig returns the standard session bounds.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		DuePullLimit:        20,
		SmartTopUpThreshold: 5,
		MaxQueueLength:      20,
		IdleTTL:             2 * time.Hour,
	}
}

// Exercise is one entry of a session queue.
type Exercise struct {
	Item  Item
	Type  ExerciseType
	IsNew bool
	// Progress is the record snapshot taken at build time. Nil for new words.
	Progress *Progress
}

// SessionStats are session-local counters. They are never persisted.
type SessionStats struct {
	Correct   int
	Incorrect int
	Learned   int
}

// Answered returns the number of graded submissions.
func (s SessionStats) Answered() int { return s.Correct + s.Incorrect }

// SubmitOutcome tells the caller whether the queue has more entries.
type SubmitOutcome string

const (
	SubmitOutcomeAdvanced SubmitOutcome = "advanced"
	SubmitOutcomeComplete SubmitOutcome = "complete"
)

func (o SubmitOutcome) String() string { return string(o) }
