package study

import (
	"time"

	"github.com/heartmarshall/wordpath/internal/domain"
	"github.com/heartmarshall/wordpath/internal/service/study/sm2"
)

// ApplyReview returns p updated by one graded review at now. The input record
// is left untouched. It is the only path by which progress records change.
func ApplyReview(p domain.Progress, grade domain.Grade, now time.Time) (domain.Progress, error) {
	res, err := sm2.Schedule(sm2.State{
		Level:        p.FamiliarityLevel,
		Ease:         p.EaseFactor,
		IntervalDays: p.IntervalDays,
	}, grade, now)
	if err != nil {
		return domain.Progress{}, err
	}

	next := p
	next.FamiliarityLevel = res.Level
	next.EaseFactor = res.Ease
	next.IntervalDays = res.IntervalDays
	next.NextReviewAt = res.NextReviewAt
	next.ReviewCount++
	if grade.IsCorrect() {
		next.CorrectCount++
	} else {
		next.IncorrectCount++
	}
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt

	return next, nil
}
