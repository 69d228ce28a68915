// Package item implements the read-only item catalog using PostgreSQL.
package item

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/wordpath/internal/adapter/postgres"
	"github.com/heartmarshall/wordpath/internal/domain"
)

// Repo provides item lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{db: pool}
}

var columns = []string{
	"id", "ordinal", "headword", "definition", "example", "phonetic", "part_of_speech",
	"translation", "translation_definition", "translation_example", "meanings",
	"image_url", "audio_url", "video_url", "book", "unit",
	"synonyms", "antonyms", "topic_tags", "difficulty", "created_at",
}

// Columns returns the item column list, qualified with alias when it is not empty.
func Columns(alias string) []string {
	if alias == "" {
		return columns
	}
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// ListByScope returns every item of a book/unit in catalog order.
func (r *Repo) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Item, error) {
	query, args, err := postgres.Builder.
		Select(Columns("")...).
		From("items").
		Where(squirrel.Eq{"book": scope.Book, "unit": scope.Unit}).
		OrderBy("ordinal ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items by scope: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it, err := row.Item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items by scope: %w", err)
	}

	return items, nil
}

// GetByID returns a single item. Returns domain.ErrNotFound when it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query, args, err := postgres.Builder.
		Select(Columns("")...).
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query: %w", err)
	}

	var row Row
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.Targets()...); err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	it, err := row.Item()
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

// Row is a scan target for the columns returned by Columns.
type Row struct {
	item     domain.Item
	meanings []byte
}

// Targets returns scan destinations in Columns order.
func (r *Row) Targets() []any {
	it := &r.item
	return []any{
		&it.ID, &it.Ordinal, &it.Headword, &it.Definition, &it.Example, &it.Phonetic, &it.PartOfSpeech,
		&it.Translation, &it.TranslationDefinition, &it.TranslationExample, &r.meanings,
		&it.Media.ImageURL, &it.Media.AudioURL, &it.Media.VideoURL, &it.Book, &it.Unit,
		&it.Synonyms, &it.Antonyms, &it.TopicTags, &it.Difficulty, &it.CreatedAt,
	}
}

// Item decodes the scanned row.
func (r *Row) Item() (domain.Item, error) {
	it := r.item
	if len(r.meanings) > 0 {
		if err := json.Unmarshal(r.meanings, &it.Meanings); err != nil {
			return domain.Item{}, fmt.Errorf("decode meanings of item %s: %w", it.ID, err)
		}
	}
	return it, nil
}
