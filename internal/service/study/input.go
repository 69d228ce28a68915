package study

import (
	"github.com/heartmarshall/wordpath/internal/domain"
)

// BuildSessionInput holds the parameters for composing a session.
type BuildSessionInput struct {
	Scope domain.Scope
	// Mode defaults to smart when empty.
	Mode domain.SessionMode
}

// Validate checks all fields and collects all errors.
func (i *BuildSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.Scope.Book < 1 {
		errs = append(errs, domain.FieldError{Field: "book", Message: "must be positive"})
	}
	if i.Scope.Unit < 1 {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "must be positive"})
	}
	if i.Mode != "" && !i.Mode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be learn, review, or smart"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *BuildSessionInput) mode() domain.SessionMode {
	if i.Mode == "" {
		return domain.SessionModeSmart
	}
	return i.Mode
}

func validateGrade(g domain.Grade) error {
	if !g.IsValid() {
		return domain.NewValidationError("grade", "must be between 0 and 3")
	}
	return nil
}
