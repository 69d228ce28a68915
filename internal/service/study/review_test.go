package study

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
)

func TestApplyReview_Counters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		grade         domain.Grade
		wantCorrect   int
		wantIncorrect int
	}{
		{"incorrect", domain.GradeIncorrect, 3, 2},
		{"hard", domain.GradeHard, 4, 1},
		{"perfect", domain.GradePerfect, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prior := domain.NewProgress(uuid.New(), uuid.New())
			prior.ReviewCount = 4
			prior.CorrectCount = 3
			prior.IncorrectCount = 1

			got, err := ApplyReview(prior, tt.grade, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ReviewCount != 5 {
				t.Errorf("ReviewCount = %d, want 5", got.ReviewCount)
			}
			if got.CorrectCount != tt.wantCorrect || got.IncorrectCount != tt.wantIncorrect {
				t.Errorf("counts = %d/%d, want %d/%d", got.CorrectCount, got.IncorrectCount, tt.wantCorrect, tt.wantIncorrect)
			}
			if got.LastReviewedAt == nil || !got.LastReviewedAt.Equal(testNow) {
				t.Errorf("LastReviewedAt = %v", got.LastReviewedAt)
			}
			if got.LearnerID != prior.LearnerID || got.ItemID != prior.ItemID {
				t.Error("key fields changed")
			}
		})
	}
}

func TestApplyReview_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	prior := domain.NewProgress(uuid.New(), uuid.New())
	before := prior

	if _, err := ApplyReview(prior, domain.GradePerfect, testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prior != before {
		t.Errorf("input changed: %+v", prior)
	}
}

func TestApplyReview_Scenarios(t *testing.T) {
	t.Parallel()

	p := domain.NewProgress(uuid.New(), uuid.New())

	fail, err := ApplyReview(p, domain.GradeIncorrect, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fail.FamiliarityLevel != 0 || fail.IntervalDays != 0.007 || !approxEqual(fail.EaseFactor, 2.3) {
		t.Errorf("failure result = %+v", fail)
	}
	if !fail.NextReviewAt.After(testNow) {
		t.Error("NextReviewAt should be in the future")
	}

	p.FamiliarityLevel = 3
	p.IntervalDays = 1
	grad, err := ApplyReview(p, domain.GradePerfect, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grad.FamiliarityLevel != 4 || !approxEqual(grad.IntervalDays, 2.6) || grad.Phase() != domain.PhaseReviewing {
		t.Errorf("graduation result = %+v", grad)
	}
}

func TestApplyReview_RejectsInvalid(t *testing.T) {
	t.Parallel()

	p := domain.NewProgress(uuid.New(), uuid.New())
	if _, err := ApplyReview(p, domain.Grade(5), testNow); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for grade 5, got %v", err)
	}

	p.IntervalDays = -3
	if _, err := ApplyReview(p, domain.GradeGood, testNow); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for negative interval, got %v", err)
	}
}
