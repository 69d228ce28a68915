package domain

import (
	"time"

	"github.com/google/uuid"
)

// Scheduling constants shared by the scheduler and storage defaults.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// LearningSteps is the familiarity level at which an item graduates
	// from the learning ladder into the reviewing phase.
	LearningSteps = 4
)

// Progress is a learner's scheduling state for one item.
type Progress struct {
	LearnerID        uuid.UUID
	ItemID           uuid.UUID
	FamiliarityLevel int
	EaseFactor       float64
	IntervalDays     float64
	NextReviewAt     time.Time
	ReviewCount      int
	CorrectCount     int
	IncorrectCount   int
	LastReviewedAt   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewProgress returns the default state of an item the learner has never graded.
func NewProgress(learnerID, itemID uuid.UUID) Progress {
	return Progress{
		LearnerID:  learnerID,
		ItemID:     itemID,
		EaseFactor: DefaultEaseFactor,
	}
}

// IsDue reports whether the record should be reviewed at now.
func (p *Progress) IsDue(now time.Time) bool {
	return !p.NextReviewAt.After(now)
}

// Phase returns the scheduling phase implied by the familiarity level.
func (p *Progress) Phase() Phase {
	switch {
	case p.FamiliarityLevel <= 0:
		return PhaseFailed
	case p.FamiliarityLevel < LearningSteps:
		return PhaseLearning
	default:
		return PhaseReviewing
	}
}

// DueProgress is a due progress record joined with its item.
type DueProgress struct {
	Progress Progress
	Item     Item
}
