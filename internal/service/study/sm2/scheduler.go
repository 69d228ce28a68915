// Package sm2 implements the SM-2 variant used to schedule vocabulary reviews:
// a fixed learning ladder followed by grade-driven interval growth.
package sm2

import (
	"fmt"
	"math"
	"time"

	"github.com/heartmarshall/wordpath/internal/domain"
)

// Interval bounds in days.
const (
	MinIntervalDays = 0.007 // ~10 minutes
	MaxIntervalDays = 180.0
)

// LearningIntervals are the fixed spacings of the learning ladder, indexed by
// familiarity level.
var LearningIntervals = [domain.LearningSteps]float64{
	0.007, // 10 minutes
	0.042, // 1 hour
	0.33,  // 8 hours
	1.0,   // 1 day
}

const failEasePenalty = 0.2

// State is the scheduling state carried between reviews.
type State struct {
	Level        int
	Ease         float64
	IntervalDays float64
}

// Result is the state after a review plus the next due time.
type Result struct {
	State
	NextReviewAt time.Time
}

// Schedule applies one graded review to state. It is pure: now is supplied by
// the caller and nothing outside the returned value changes.
func Schedule(state State, grade domain.Grade, now time.Time) (Result, error) {
	if err := validate(state, grade); err != nil {
		return Result{}, err
	}

	ease := state.Ease
	if ease == 0 {
		ease = domain.DefaultEaseFactor
	}

	var next State
	if grade == domain.GradeIncorrect {
		next = State{
			Level:        0,
			Ease:         math.Max(domain.MinEaseFactor, ease-failEasePenalty),
			IntervalDays: MinIntervalDays,
		}
	} else {
		next = success(state, ease, grade)
	}

	next.IntervalDays = clampInterval(next.IntervalDays)

	return Result{
		State:        next,
		NextReviewAt: now.Add(Days(next.IntervalDays)),
	}, nil
}

func success(state State, ease float64, grade domain.Grade) State {
	newEase := math.Max(domain.MinEaseFactor, ease+easeDelta(grade))

	if state.Level < domain.LearningSteps {
		level := state.Level + 1
		interval := 1 * newEase // graduation
		if level < domain.LearningSteps {
			interval = LearningIntervals[level]
		}
		return State{Level: level, Ease: newEase, IntervalDays: interval}
	}

	// Reviewing phase grows by a fixed per-grade multiplier; ease is tracked
	// but does not take part.
	return State{
		Level:        state.Level,
		Ease:         newEase,
		IntervalDays: state.IntervalDays * reviewMultiplier(grade),
	}
}

func easeDelta(grade domain.Grade) float64 {
	switch grade {
	case domain.GradePerfect:
		return 0.1
	case domain.GradeGood:
		return 0
	case domain.GradeHard:
		return -0.1
	}
	return 0
}

func reviewMultiplier(grade domain.Grade) float64 {
	switch grade {
	case domain.GradePerfect:
		return 2.5
	case domain.GradeGood:
		return 2.0
	case domain.GradeHard:
		return 1.5
	}
	return 1
}

func clampInterval(days float64) float64 {
	days = math.Min(days, MaxIntervalDays)
	return math.Max(days, MinIntervalDays)
}

// Days converts a fractional day count to a duration.
func Days(days float64) time.Duration {
	return time.Duration(days * float64(24*time.Hour))
}

func validate(state State, grade domain.Grade) error {
	var errs []domain.FieldError

	if !grade.IsValid() {
		errs = append(errs, domain.FieldError{Field: "grade", Message: fmt.Sprintf("must be between 0 and 3, got %d", int(grade))})
	}
	if state.Level < 0 {
		errs = append(errs, domain.FieldError{Field: "familiarity_level", Message: "must not be negative"})
	}
	if !finiteNonNegative(state.Ease) {
		errs = append(errs, domain.FieldError{Field: "ease_factor", Message: "must be a non-negative number"})
	}
	if !finiteNonNegative(state.IntervalDays) {
		errs = append(errs, domain.FieldError{Field: "interval_days", Message: "must be a non-negative number"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
