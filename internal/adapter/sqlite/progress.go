package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartmarshall/wordpath/internal/domain"
)

// progressRow mirrors the progress table. Times are stored in UTC so that
// their text form sorts chronologically.
type progressRow struct {
	LearnerID        uuid.UUID  `db:"learner_id"`
	ItemID           uuid.UUID  `db:"item_id"`
	FamiliarityLevel int        `db:"familiarity_level"`
	EaseFactor       float64    `db:"ease_factor"`
	IntervalDays     float64    `db:"interval_days"`
	NextReviewAt     time.Time  `db:"next_review_at"`
	ReviewCount      int        `db:"review_count"`
	CorrectCount     int        `db:"correct_count"`
	IncorrectCount   int        `db:"incorrect_count"`
	LastReviewedAt   *time.Time `db:"last_reviewed_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func fromProgress(p *domain.Progress) progressRow {
	row := progressRow{
		LearnerID:        p.LearnerID,
		ItemID:           p.ItemID,
		FamiliarityLevel: p.FamiliarityLevel,
		EaseFactor:       p.EaseFactor,
		IntervalDays:     p.IntervalDays,
		NextReviewAt:     p.NextReviewAt.UTC(),
		ReviewCount:      p.ReviewCount,
		CorrectCount:     p.CorrectCount,
		IncorrectCount:   p.IncorrectCount,
		CreatedAt:        p.CreatedAt.UTC(),
		UpdatedAt:        p.UpdatedAt.UTC(),
	}
	if p.LastReviewedAt != nil {
		t := p.LastReviewedAt.UTC()
		row.LastReviewedAt = &t
	}
	return row
}

func (r progressRow) toDomain() domain.Progress {
	return domain.Progress{
		LearnerID:        r.LearnerID,
		ItemID:           r.ItemID,
		FamiliarityLevel: r.FamiliarityLevel,
		EaseFactor:       r.EaseFactor,
		IntervalDays:     r.IntervalDays,
		NextReviewAt:     r.NextReviewAt,
		ReviewCount:      r.ReviewCount,
		CorrectCount:     r.CorrectCount,
		IncorrectCount:   r.IncorrectCount,
		LastReviewedAt:   r.LastReviewedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// dueRow is a progress row joined with its item. Columns are selected under
// the "progress." and "item." prefixes.
type dueRow struct {
	Progress progressRow `db:"progress"`
	Item     itemRow     `db:"item"`
}

const dueQuery = `
SELECT p.learner_id AS "progress.learner_id", p.item_id AS "progress.item_id",
       p.familiarity_level AS "progress.familiarity_level",
       p.ease_factor AS "progress.ease_factor", p.interval_days AS "progress.interval_days",
       p.next_review_at AS "progress.next_review_at", p.review_count AS "progress.review_count",
       p.correct_count AS "progress.correct_count", p.incorrect_count AS "progress.incorrect_count",
       p.last_reviewed_at AS "progress.last_reviewed_at", p.created_at AS "progress.created_at",
       p.updated_at AS "progress.updated_at",
       i.id AS "item.id", i.ordinal AS "item.ordinal", i.headword AS "item.headword",
       i.definition AS "item.definition", i.example AS "item.example",
       i.phonetic AS "item.phonetic", i.part_of_speech AS "item.part_of_speech",
       i.translation AS "item.translation",
       i.translation_definition AS "item.translation_definition",
       i.translation_example AS "item.translation_example", i.meanings AS "item.meanings",
       i.image_url AS "item.image_url", i.audio_url AS "item.audio_url",
       i.video_url AS "item.video_url", i.book AS "item.book", i.unit AS "item.unit",
       i.synonyms AS "item.synonyms", i.antonyms AS "item.antonyms",
       i.topic_tags AS "item.topic_tags", i.difficulty AS "item.difficulty",
       i.created_at AS "item.created_at"
FROM progress p
JOIN items i ON i.id = p.item_id
WHERE p.learner_id = ? AND p.next_review_at <= ?
ORDER BY p.next_review_at, i.ordinal
LIMIT ?`

const upsertQuery = `
INSERT INTO progress (
    learner_id, item_id, familiarity_level, ease_factor, interval_days, next_review_at,
    review_count, correct_count, incorrect_count, last_reviewed_at, created_at, updated_at
) VALUES (
    :learner_id, :item_id, :familiarity_level, :ease_factor, :interval_days, :next_review_at,
    :review_count, :correct_count, :incorrect_count, :last_reviewed_at, :created_at, :updated_at
)
ON CONFLICT (learner_id, item_id) DO UPDATE SET
    familiarity_level = excluded.familiarity_level,
    ease_factor       = excluded.ease_factor,
    interval_days     = excluded.interval_days,
    next_review_at    = excluded.next_review_at,
    review_count      = excluded.review_count,
    correct_count     = excluded.correct_count,
    incorrect_count   = excluded.incorrect_count,
    last_reviewed_at  = excluded.last_reviewed_at,
    updated_at        = excluded.updated_at`

// ProgressRepo provides progress persistence backed by SQLite.
type ProgressRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewProgressRepo creates a new progress repository.
func NewProgressRepo(db *sqlx.DB) *ProgressRepo {
	return &ProgressRepo{db: db, now: time.Now}
}

// ListDue returns the learner's records with next_review_at <= asOf joined
// with their items, earliest due first.
func (r *ProgressRepo) ListDue(ctx context.Context, learnerID uuid.UUID, asOf time.Time, limit int) ([]domain.DueProgress, error) {
	if limit <= 0 {
		return []domain.DueProgress{}, nil
	}

	var rows []dueRow
	if err := r.db.SelectContext(ctx, &rows, dueQuery, learnerID, asOf.UTC(), limit); err != nil {
		return nil, fmt.Errorf("list due progress: %w", err)
	}

	out := make([]domain.DueProgress, 0, len(rows))
	for _, row := range rows {
		it, err := row.Item.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, domain.DueProgress{Progress: row.Progress.toDomain(), Item: it})
	}
	return out, nil
}

// Get returns the learner's record for one item. Returns domain.ErrNotFound
// when the learner has never graded it.
func (r *ProgressRepo) Get(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Progress, error) {
	var row progressRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM progress WHERE learner_id = ? AND item_id = ?`,
		learnerID, itemID,
	)
	if err != nil {
		return nil, mapError(err, "progress", itemID)
	}
	p := row.toDomain()
	return &p, nil
}

// Upsert writes p keyed by (learner, item). Writing the same record twice
// leaves the same row. CreatedAt keeps its first stored value.
func (r *ProgressRepo) Upsert(ctx context.Context, p *domain.Progress) error {
	now := r.now().UTC()
	row := fromProgress(p)
	row.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		row.CreatedAt = now
	}

	if _, err := r.db.NamedExecContext(ctx, upsertQuery, row); err != nil {
		return mapError(err, "progress", p.ItemID)
	}

	var createdAt time.Time
	err := r.db.GetContext(ctx, &createdAt,
		`SELECT created_at FROM progress WHERE learner_id = ? AND item_id = ?`,
		p.LearnerID, p.ItemID,
	)
	if err != nil {
		return mapError(err, "progress", p.ItemID)
	}

	p.CreatedAt = createdAt
	p.UpdatedAt = now
	return nil
}
