package rest

import (
	"time"

	"github.com/heartmarshall/wordpath/internal/domain"
	"github.com/heartmarshall/wordpath/internal/service/study"
)

type itemResponse struct {
	ID                    string           `json:"id"`
	Headword              string           `json:"headword"`
	Definition            string           `json:"definition"`
	Example               *string          `json:"example,omitempty"`
	Phonetic              *string          `json:"phonetic,omitempty"`
	PartOfSpeech          *string          `json:"partOfSpeech,omitempty"`
	Translation           *string          `json:"translation,omitempty"`
	TranslationDefinition *string          `json:"translationDefinition,omitempty"`
	TranslationExample    *string          `json:"translationExample,omitempty"`
	Meanings              []domain.Meaning `json:"meanings"`
	ImageURL              *string          `json:"imageUrl,omitempty"`
	AudioURL              *string          `json:"audioUrl,omitempty"`
	VideoURL              *string          `json:"videoUrl,omitempty"`
	Book                  int              `json:"book"`
	Unit                  int              `json:"unit"`
	Synonyms              []string         `json:"synonyms"`
	Antonyms              []string         `json:"antonyms"`
	TopicTags             []string         `json:"topicTags"`
	Difficulty            int              `json:"difficulty"`
}

type progressResponse struct {
	FamiliarityLevel int        `json:"familiarityLevel"`
	Phase            string     `json:"phase"`
	EaseFactor       float64    `json:"easeFactor"`
	IntervalDays     float64    `json:"intervalDays"`
	NextReviewAt     time.Time  `json:"nextReviewAt"`
	ReviewCount      int        `json:"reviewCount"`
	CorrectCount     int        `json:"correctCount"`
	IncorrectCount   int        `json:"incorrectCount"`
	LastReviewedAt   *time.Time `json:"lastReviewedAt,omitempty"`
}

type exerciseResponse struct {
	Type     string            `json:"type"`
	IsNew    bool              `json:"isNew"`
	Item     itemResponse      `json:"item"`
	Progress *progressResponse `json:"progress,omitempty"`
}

type statsResponse struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Learned   int `json:"learned"`
	Answered  int `json:"answered"`
}

type sessionResponse struct {
	ID       string            `json:"id"`
	Mode     string            `json:"mode"`
	Book     int               `json:"book"`
	Unit     int               `json:"unit"`
	Guest    bool              `json:"guest"`
	Position int               `json:"position"`
	Total    int               `json:"total"`
	Complete bool              `json:"complete"`
	Current  *exerciseResponse `json:"current,omitempty"`
	Stats    statsResponse     `json:"stats"`
}

type submitResponse struct {
	Outcome   string            `json:"outcome"`
	Progress  *progressResponse `json:"progress,omitempty"`
	Persisted bool              `json:"persisted"`
	Session   sessionResponse   `json:"session"`
}

func toItemResponse(it *domain.Item) itemResponse {
	return itemResponse{
		ID:                    it.ID.String(),
		Headword:              it.Headword,
		Definition:            it.Definition,
		Example:               it.Example,
		Phonetic:              it.Phonetic,
		PartOfSpeech:          it.PartOfSpeech,
		Translation:           it.Translation,
		TranslationDefinition: it.TranslationDefinition,
		TranslationExample:    it.TranslationExample,
		Meanings:              nonNil(it.Meanings),
		ImageURL:              it.Media.ImageURL,
		AudioURL:              it.Media.AudioURL,
		VideoURL:              it.Media.VideoURL,
		Book:                  it.Book,
		Unit:                  it.Unit,
		Synonyms:              nonNil(it.Synonyms),
		Antonyms:              nonNil(it.Antonyms),
		TopicTags:             nonNil(it.TopicTags),
		Difficulty:            it.Difficulty,
	}
}

func toProgressResponse(p *domain.Progress) *progressResponse {
	if p == nil {
		return nil
	}
	return &progressResponse{
		FamiliarityLevel: p.FamiliarityLevel,
		Phase:            p.Phase().String(),
		EaseFactor:       p.EaseFactor,
		IntervalDays:     p.IntervalDays,
		NextReviewAt:     p.NextReviewAt,
		ReviewCount:      p.ReviewCount,
		CorrectCount:     p.CorrectCount,
		IncorrectCount:   p.IncorrectCount,
		LastReviewedAt:   p.LastReviewedAt,
	}
}

func toStatsResponse(s domain.SessionStats) statsResponse {
	return statsResponse{
		Correct:   s.Correct,
		Incorrect: s.Incorrect,
		Learned:   s.Learned,
		Answered:  s.Answered(),
	}
}

func toSessionResponse(v study.View) sessionResponse {
	resp := sessionResponse{
		ID:       v.ID.String(),
		Mode:     v.Mode.String(),
		Book:     v.Scope.Book,
		Unit:     v.Scope.Unit,
		Guest:    v.Guest,
		Position: v.Position,
		Total:    v.Total,
		Complete: v.Complete,
		Stats:    toStatsResponse(v.Stats),
	}
	if v.Current != nil {
		resp.Current = &exerciseResponse{
			Type:     v.Current.Type.String(),
			IsNew:    v.Current.IsNew,
			Item:     toItemResponse(&v.Current.Item),
			Progress: toProgressResponse(v.Current.Progress),
		}
	}
	return resp
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
