package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

//go:generate moq -out item_repo_mock_test.go -pkg study . itemRepo
type itemRepo interface {
	ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Item, error)
}

//go:generate moq -out progress_repo_mock_test.go -pkg study . progressRepo
type progressRepo interface {
	ListDue(ctx context.Context, learnerID uuid.UUID, asOf time.Time, limit int) ([]domain.DueProgress, error)
	Upsert(ctx context.Context, p *domain.Progress) error
}

type clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service composes study sessions and keeps the live ones addressable.
type Service struct {
	items    itemRepo
	progress progressRepo
	sessions *Registry
	log      *slog.Logger
	cfg      domain.SessionConfig
	clock    clock
}

// NewService creates a new study service.
func NewService(
	log *slog.Logger,
	items itemRepo,
	progress progressRepo,
	cfg domain.SessionConfig,
) (*Service, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	c := realClock{}
	return &Service{
		items:    items,
		progress: progress,
		sessions: NewRegistry(cfg.IdleTTL, c),
		log:      log.With("service", "study"),
		cfg:      cfg,
		clock:    c,
	}, nil
}

func validateConfig(cfg domain.SessionConfig) error {
	var errs []domain.FieldError

	if cfg.MaxQueueLength < 2 {
		errs = append(errs, domain.FieldError{Field: "max_queue_length", Message: "must be at least 2"})
	}
	if cfg.DuePullLimit <= 0 || cfg.DuePullLimit > cfg.MaxQueueLength {
		errs = append(errs, domain.FieldError{Field: "due_pull_limit", Message: "must be between 1 and max_queue_length"})
	}
	if cfg.SmartTopUpThreshold < 0 {
		errs = append(errs, domain.FieldError{Field: "smart_top_up_threshold", Message: "must not be negative"})
	}
	if cfg.IdleTTL <= 0 {
		errs = append(errs, domain.FieldError{Field: "idle_ttl", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
