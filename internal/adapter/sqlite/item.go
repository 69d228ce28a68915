package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartmarshall/wordpath/internal/domain"
)

const itemColumns = `id, ordinal, headword, definition, example, phonetic, part_of_speech,
	translation, translation_definition, translation_example, meanings,
	image_url, audio_url, video_url, book, unit, synonyms, antonyms, topic_tags,
	difficulty, created_at`

// itemRow mirrors the items table. JSON-encoded columns are decoded by toDomain.
type itemRow struct {
	ID                    uuid.UUID `db:"id"`
	Ordinal               int64     `db:"ordinal"`
	Headword              string    `db:"headword"`
	Definition            string    `db:"definition"`
	Example               *string   `db:"example"`
	Phonetic              *string   `db:"phonetic"`
	PartOfSpeech          *string   `db:"part_of_speech"`
	Translation           *string   `db:"translation"`
	TranslationDefinition *string   `db:"translation_definition"`
	TranslationExample    *string   `db:"translation_example"`
	Meanings              string    `db:"meanings"`
	ImageURL              *string   `db:"image_url"`
	AudioURL              *string   `db:"audio_url"`
	VideoURL              *string   `db:"video_url"`
	Book                  int       `db:"book"`
	Unit                  int       `db:"unit"`
	Synonyms              string    `db:"synonyms"`
	Antonyms              string    `db:"antonyms"`
	TopicTags             string    `db:"topic_tags"`
	Difficulty            int       `db:"difficulty"`
	CreatedAt             time.Time `db:"created_at"`
}

func (r itemRow) toDomain() (domain.Item, error) {
	it := domain.Item{
		ID:                    r.ID,
		Ordinal:               r.Ordinal,
		Headword:              r.Headword,
		Definition:            r.Definition,
		Example:               r.Example,
		Phonetic:              r.Phonetic,
		PartOfSpeech:          r.PartOfSpeech,
		Translation:           r.Translation,
		TranslationDefinition: r.TranslationDefinition,
		TranslationExample:    r.TranslationExample,
		Media:                 domain.Media{ImageURL: r.ImageURL, AudioURL: r.AudioURL, VideoURL: r.VideoURL},
		Book:                  r.Book,
		Unit:                  r.Unit,
		Difficulty:            r.Difficulty,
		CreatedAt:             r.CreatedAt,
	}

	fields := []struct {
		name string
		raw  string
		dst  any
	}{
		{"meanings", r.Meanings, &it.Meanings},
		{"synonyms", r.Synonyms, &it.Synonyms},
		{"antonyms", r.Antonyms, &it.Antonyms},
		{"topic_tags", r.TopicTags, &it.TopicTags},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return domain.Item{}, fmt.Errorf("decode %s of item %s: %w", f.name, r.ID, err)
		}
	}

	return it, nil
}

// ItemRepo provides item lookups backed by SQLite.
type ItemRepo struct {
	db *sqlx.DB
}

// NewItemRepo creates a new item repository.
func NewItemRepo(db *sqlx.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// ListByScope returns every item of a book/unit in catalog order.
func (r *ItemRepo) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Item, error) {
	var rows []itemRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+itemColumns+` FROM items WHERE book = ? AND unit = ? ORDER BY ordinal`,
		scope.Book, scope.Unit,
	)
	if err != nil {
		return nil, fmt.Errorf("list items by scope: %w", err)
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		it, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// GetByID returns a single item. Returns domain.ErrNotFound when it does not exist.
func (r *ItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	var row itemRow
	err := r.db.GetContext(ctx, &row, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	if err != nil {
		return nil, mapError(err, "item", id)
	}

	it, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &it, nil
}
