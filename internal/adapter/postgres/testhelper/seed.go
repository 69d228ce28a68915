package testhelper

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wordpath/internal/domain"
)

// UniqueScope returns a book/unit pair no other test is likely to use, so
// tests sharing the container do not see each other's items.
func UniqueScope() domain.Scope {
	return domain.Scope{Book: 1000 + rand.IntN(1_000_000_000), Unit: 1 + rand.IntN(50)}
}

// SeedItem inserts an item into scope and returns it as stored.
func SeedItem(t *testing.T, pool *pgxpool.Pool, scope domain.Scope, headword string) domain.Item {
	t.Helper()
	ctx := context.Background()

	example := "An example with " + headword + "."
	translation := "перевод " + headword
	item := domain.Item{
		ID:          uuid.New(),
		Headword:    headword,
		Definition:  "Definition of " + headword,
		Example:     &example,
		Translation: &translation,
		Meanings: []domain.Meaning{
			{Gloss: "first sense of " + headword, Example: &example},
		},
		Book:      scope.Book,
		Unit:      scope.Unit,
		Synonyms:  []string{headword + "-syn"},
		Antonyms:  []string{},
		TopicTags: []string{"test"},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	meanings, err := json.Marshal(item.Meanings)
	if err != nil {
		t.Fatalf("testhelper: SeedItem marshal meanings: %v", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO items (id, headword, definition, example, translation, meanings, book, unit,
		                    synonyms, antonyms, topic_tags, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING ordinal`,
		item.ID, item.Headword, item.Definition, item.Example, item.Translation, meanings,
		item.Book, item.Unit, item.Synonyms, item.Antonyms, item.TopicTags, item.CreatedAt,
	).Scan(&item.Ordinal)
	if err != nil {
		t.Fatalf("testhelper: SeedItem insert: %v", err)
	}

	return item
}

// SeedProgress inserts a progress record for learnerID on item, due at dueAt.
func SeedProgress(t *testing.T, pool *pgxpool.Pool, learnerID uuid.UUID, item domain.Item, level int, dueAt time.Time) domain.Progress {
	t.Helper()

	p := domain.NewProgress(learnerID, item.ID)
	p.FamiliarityLevel = level
	p.NextReviewAt = dueAt.UTC().Truncate(time.Microsecond)
	p.IntervalDays = 1

	_, err := pool.Exec(context.Background(),
		`INSERT INTO progress (learner_id, item_id, familiarity_level, ease_factor, interval_days, next_review_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.LearnerID, p.ItemID, p.FamiliarityLevel, p.EaseFactor, p.IntervalDays, p.NextReviewAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProgress insert: %v", err)
	}

	return p
}
