package domain

import (
	"time"

	"github.com/google/uuid"
)

// Scope selects a slice of the catalog for new-word selection.
type Scope struct {
	Book int
	Unit int
}

// DefaultScope is used when a caller does not name a book or unit.
var DefaultScope = Scope{Book: 1, Unit: 1}

// Item is a vocabulary entry in the catalog. Items are read-only to the
// study engine.
type Item struct {
	ID uuid.UUID
	// Ordinal is the stable catalog order used for deterministic sessions.
	Ordinal    int64
	Headword   string
	Definition string
	Example    *string
	Phonetic   *string

	PartOfSpeech *string

	// Secondary-language gloss.
	Translation           *string
	TranslationDefinition *string
	TranslationExample    *string

	Meanings []Meaning
	Media    Media

	Book int
	Unit int

	Synonyms   []string
	Antonyms   []string
	TopicTags  []string
	Difficulty int

	CreatedAt time.Time
}

// Scope returns the book/unit the item belongs to.
func (i *Item) Scope() Scope {
	return Scope{Book: i.Book, Unit: i.Unit}
}

// Meaning is an additional sense of an item.
type Meaning struct {
	Gloss   string  `json:"meaning"`
	Example *string `json:"example,omitempty"`
}

// Media holds optional asset URLs.
type Media struct {
	ImageURL *string
	AudioURL *string
	VideoURL *string
}
