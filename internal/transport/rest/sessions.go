package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
	"github.com/heartmarshall/wordpath/internal/service/study"
)

// studyService defines the minimal interface needed by SessionHandler.
type studyService interface {
	StartSession(ctx context.Context, input study.BuildSessionInput) (study.View, error)
	GetSession(ctx context.Context, id uuid.UUID) (study.View, error)
	SubmitGrade(ctx context.Context, input study.SubmitGradeInput) (study.SubmitResult, study.View, error)
	DiscardSession(ctx context.Context, id uuid.UUID) error
}

// SessionHandler serves practice session endpoints.
type SessionHandler struct {
	svc studyService
	log *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc studyService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, log: logger.With("handler", "sessions")}
}

type startSessionRequest struct {
	Book *int   `json:"book"`
	Unit *int   `json:"unit"`
	Mode string `json:"mode"`
}

type submitGradeRequest struct {
	Grade *int `json:"grade"`
}

// Start handles POST /sessions. An empty body starts a smart session on the
// default book and unit.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	scope := domain.DefaultScope
	if req.Book != nil {
		scope.Book = *req.Book
	}
	if req.Unit != nil {
		scope.Unit = *req.Unit
	}

	view, err := h.svc.StartSession(r.Context(), study.BuildSessionInput{
		Scope: scope,
		Mode:  domain.SessionMode(req.Mode),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(view))
}

// Get handles GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

// Stats handles GET /sessions/{id}/stats.
func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(view.Stats))
}

// Submit handles POST /sessions/{id}/grades.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req submitGradeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Grade == nil {
		handleError(h.log, w, r, domain.NewValidationError("grade", "required"))
		return
	}

	res, view, err := h.svc.SubmitGrade(r.Context(), study.SubmitGradeInput{
		SessionID: id,
		Grade:     domain.Grade(*req.Grade),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Outcome:   res.Outcome.String(),
		Progress:  toProgressResponse(res.Progress),
		Persisted: res.Progress != nil && res.PersistErr == nil,
		Session:   toSessionResponse(view),
	})
}

// Discard handles DELETE /sessions/{id}.
func (h *SessionHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DiscardSession(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: []fieldResponse{{Field: "id", Message: "must be a UUID"}},
		})
		return uuid.Nil, false
	}
	return id, true
}
