package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
)

//go:generate moq -out item_repo_mock_test.go -pkg catalog . itemRepo
type itemRepo interface {
	ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
}

// Service implements read-only catalog lookups. The catalog is shared, so no
// learner identity is required.
type Service struct {
	log   *slog.Logger
	items itemRepo
}

// NewService creates a new catalog service.
func NewService(logger *slog.Logger, items itemRepo) *Service {
	return &Service{
		log:   logger.With("service", "catalog"),
		items: items,
	}
}

// ListItems returns the items of one book/unit in catalog order.
func (s *Service) ListItems(ctx context.Context, scope domain.Scope) ([]domain.Item, error) {
	var errs []domain.FieldError
	if scope.Book < 1 {
		errs = append(errs, domain.FieldError{Field: "book", Message: "must be positive"})
	}
	if scope.Unit < 1 {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	items, err := s.items.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	s.log.DebugContext(ctx, "items listed",
		slog.Int("book", scope.Book),
		slog.Int("unit", scope.Unit),
		slog.Int("count", len(items)),
	)
	return items, nil
}

// GetItem returns a single item. Returns domain.ErrNotFound if it does not exist.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}
