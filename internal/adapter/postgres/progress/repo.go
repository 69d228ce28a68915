// Package progress implements learner progress persistence using PostgreSQL.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/wordpath/internal/adapter/postgres"
	"github.com/heartmarshall/wordpath/internal/adapter/postgres/item"
	"github.com/heartmarshall/wordpath/internal/domain"
)

// Repo provides progress persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{db: pool}
}

var progressColumns = []string{
	"p.learner_id", "p.item_id", "p.familiarity_level", "p.ease_factor", "p.interval_days",
	"p.next_review_at", "p.review_count", "p.correct_count", "p.incorrect_count",
	"p.last_reviewed_at", "p.created_at", "p.updated_at",
}

const upsertSuffix = `ON CONFLICT (learner_id, item_id) DO UPDATE SET
    familiarity_level = EXCLUDED.familiarity_level,
    ease_factor       = EXCLUDED.ease_factor,
    interval_days     = EXCLUDED.interval_days,
    next_review_at    = EXCLUDED.next_review_at,
    review_count      = EXCLUDED.review_count,
    correct_count     = EXCLUDED.correct_count,
    incorrect_count   = EXCLUDED.incorrect_count,
    last_reviewed_at  = EXCLUDED.last_reviewed_at,
    updated_at        = now()
RETURNING created_at, updated_at`

// ListDue returns the learner's records with next_review_at <= asOf joined
// with their items, earliest due first.
func (r *Repo) ListDue(ctx context.Context, learnerID uuid.UUID, asOf time.Time, limit int) ([]domain.DueProgress, error) {
	if limit <= 0 {
		return []domain.DueProgress{}, nil
	}

	query, args, err := postgres.Builder.
		Select(append(append([]string{}, progressColumns...), item.Columns("i")...)...).
		From("progress p").
		Join("items i ON i.id = p.item_id").
		Where(squirrel.Eq{"p.learner_id": learnerID}).
		Where(squirrel.LtOrEq{"p.next_review_at": asOf}).
		OrderBy("p.next_review_at ASC", "i.ordinal ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build due query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list due progress: %w", err)
	}
	defer rows.Close()

	out := make([]domain.DueProgress, 0)
	for rows.Next() {
		var (
			p       domain.Progress
			itemRow item.Row
		)
		targets := append(progressTargets(&p), itemRow.Targets()...)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan due progress: %w", err)
		}
		it, err := itemRow.Item()
		if err != nil {
			return nil, err
		}
		out = append(out, domain.DueProgress{Progress: p, Item: it})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list due progress: %w", err)
	}

	return out, nil
}

// Get returns the learner's record for one item. Returns domain.ErrNotFound
// when the learner has never graded it.
func (r *Repo) Get(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Progress, error) {
	query, args, err := postgres.Builder.
		Select(progressColumns...).
		From("progress p").
		Where(squirrel.Eq{"p.learner_id": learnerID, "p.item_id": itemID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get progress query: %w", err)
	}

	var p domain.Progress
	if err := r.db.QueryRow(ctx, query, args...).Scan(progressTargets(&p)...); err != nil {
		return nil, postgres.MapError(err, "progress", itemID)
	}
	return &p, nil
}

// Upsert writes p keyed by (learner, item). Writing the same record twice
// leaves the same row. CreatedAt and UpdatedAt are filled from the database.
func (r *Repo) Upsert(ctx context.Context, p *domain.Progress) error {
	query, args, err := postgres.Builder.
		Insert("progress").
		Columns(
			"learner_id", "item_id", "familiarity_level", "ease_factor", "interval_days",
			"next_review_at", "review_count", "correct_count", "incorrect_count", "last_reviewed_at",
		).
		Values(
			p.LearnerID, p.ItemID, p.FamiliarityLevel, p.EaseFactor, p.IntervalDays,
			p.NextReviewAt, p.ReviewCount, p.CorrectCount, p.IncorrectCount, p.LastReviewedAt,
		).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert progress query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return postgres.MapError(err, "progress", p.ItemID)
	}
	return nil
}

func progressTargets(p *domain.Progress) []any {
	return []any{
		&p.LearnerID, &p.ItemID, &p.FamiliarityLevel, &p.EaseFactor, &p.IntervalDays,
		&p.NextReviewAt, &p.ReviewCount, &p.CorrectCount, &p.IncorrectCount,
		&p.LastReviewedAt, &p.CreatedAt, &p.UpdatedAt,
	}
}
