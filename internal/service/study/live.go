package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
)

// StartSession builds a session and registers it so later calls can address
// it by ID.
func (s *Service) StartSession(ctx context.Context, input BuildSessionInput) (View, error) {
	session, err := s.BuildSession(ctx, input)
	if err != nil {
		return View{}, err
	}
	s.sessions.Put(session)
	return session.View(), nil
}

// GetSession returns a snapshot of a live session.
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (View, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("get session: %w", err)
	}
	return session.View(), nil
}

// SubmitGradeInput holds the parameters for grading the current exercise.
type SubmitGradeInput struct {
	SessionID uuid.UUID
	Grade     domain.Grade
}

// Validate checks all fields and collects all errors.
func (i *SubmitGradeInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if !i.Grade.IsValid() {
		errs = append(errs, domain.FieldError{Field: "grade", Message: "must be between 0 and 3"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubmitGrade grades the current exercise of a live session and returns the
// submission result along with the session state after it.
func (s *Service) SubmitGrade(ctx context.Context, input SubmitGradeInput) (SubmitResult, View, error) {
	if err := input.Validate(); err != nil {
		return SubmitResult{}, View{}, err
	}

	session, err := s.sessions.Get(ctx, input.SessionID)
	if err != nil {
		return SubmitResult{}, View{}, fmt.Errorf("get session: %w", err)
	}

	res, err := session.Submit(ctx, input.Grade)
	if err != nil {
		return SubmitResult{}, View{}, fmt.Errorf("submit grade: %w", err)
	}

	return res, res.View, nil
}

// DiscardSession drops a live session.
func (s *Service) DiscardSession(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Drop(ctx, id); err != nil {
		return fmt.Errorf("discard session: %w", err)
	}

	s.log.InfoContext(ctx, "session discarded", slog.String("session_id", id.String()))
	return nil
}
