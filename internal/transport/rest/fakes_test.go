package rest

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
	"github.com/heartmarshall/wordpath/internal/service/study"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type studyServiceFake struct {
	start   func(ctx context.Context, input study.BuildSessionInput) (study.View, error)
	get     func(ctx context.Context, id uuid.UUID) (study.View, error)
	submit  func(ctx context.Context, input study.SubmitGradeInput) (study.SubmitResult, study.View, error)
	discard func(ctx context.Context, id uuid.UUID) error
}

func (f *studyServiceFake) StartSession(ctx context.Context, input study.BuildSessionInput) (study.View, error) {
	return f.start(ctx, input)
}

func (f *studyServiceFake) GetSession(ctx context.Context, id uuid.UUID) (study.View, error) {
	return f.get(ctx, id)
}

func (f *studyServiceFake) SubmitGrade(ctx context.Context, input study.SubmitGradeInput) (study.SubmitResult, study.View, error) {
	return f.submit(ctx, input)
}

func (f *studyServiceFake) DiscardSession(ctx context.Context, id uuid.UUID) error {
	return f.discard(ctx, id)
}

type catalogServiceFake struct {
	list func(ctx context.Context, scope domain.Scope) ([]domain.Item, error)
	get  func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
}

func (f *catalogServiceFake) ListItems(ctx context.Context, scope domain.Scope) ([]domain.Item, error) {
	return f.list(ctx, scope)
}

func (f *catalogServiceFake) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return f.get(ctx, id)
}
