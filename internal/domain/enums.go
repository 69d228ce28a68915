package domain

import "strconv"

// Grade is the learner's recall quality for one exercise, 0 (fail) to 3 (perfect).
type Grade int

const (
	GradeIncorrect Grade = 0
	GradeHard      Grade = 1
	GradeGood      Grade = 2
	GradePerfect   Grade = 3
)

func (g Grade) String() string {
	switch g {
	case GradeIncorrect:
		return "INCORRECT"
	case GradeHard:
		return "HARD"
	case GradeGood:
		return "GOOD"
	case GradePerfect:
		return "PERFECT"
	}
	return "Grade(" + strconv.Itoa(int(g)) + ")"
}

func (g Grade) IsValid() bool {
	return g >= GradeIncorrect && g <= GradePerfect
}

// IsCorrect reports whether the grade counts as a successful recall.
func (g Grade) IsCorrect() bool { return g > GradeIncorrect }

// ExerciseType is the presentation used for a queue entry.
type ExerciseType string

const (
	ExerciseTypePreview     ExerciseType = "preview"
	ExerciseTypeRecognition ExerciseType = "recognition"
	ExerciseTypeRecall      ExerciseType = "recall"
	ExerciseTypeProduction  ExerciseType = "production"
)

func (e ExerciseType) String() string { return string(e) }

func (e ExerciseType) IsValid() bool {
	switch e {
	case ExerciseTypePreview, ExerciseTypeRecognition, ExerciseTypeRecall, ExerciseTypeProduction:
		return true
	}
	return false
}

// IsGraded reports whether a submission on this exercise has scheduling consequences.
func (e ExerciseType) IsGraded() bool { return e != ExerciseTypePreview }

// SessionMode selects which sources feed a session queue.
type SessionMode string

const (
	SessionModeLearn  SessionMode = "learn"
	SessionModeReview SessionMode = "review"
	SessionModeSmart  SessionMode = "smart"
)

func (m SessionMode) String() string { return string(m) }

func (m SessionMode) IsValid() bool {
	switch m {
	case SessionModeLearn, SessionModeReview, SessionModeSmart:
		return true
	}
	return false
}

// PullsDue reports whether the mode draws from due progress records.
func (m SessionMode) PullsDue() bool {
	return m == SessionModeReview || m == SessionModeSmart
}

// Phase classifies a progress record by its familiarity level.
type Phase string

const (
	PhaseFailed    Phase = "FAILED"
	PhaseLearning  Phase = "LEARNING"
	PhaseReviewing Phase = "REVIEWING"
)

func (p Phase) String() string { return string(p) }
