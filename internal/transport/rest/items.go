package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/domain"
)

// catalogService defines the minimal interface needed by ItemHandler.
type catalogService interface {
	ListItems(ctx context.Context, scope domain.Scope) ([]domain.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
}

// ItemHandler serves read-only catalog endpoints.
type ItemHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(svc catalogService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: logger.With("handler", "items")}
}

type listItemsResponse struct {
	Book  int            `json:"book"`
	Unit  int            `json:"unit"`
	Items []itemResponse `json:"items"`
}

// List handles GET /items?book=&unit=. Missing parameters fall back to the
// default scope.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	scope := domain.DefaultScope
	var fields []domain.FieldError

	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"book", &scope.Book},
		{"unit", &scope.Unit},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: p.name, Message: "must be an integer"})
			continue
		}
		*p.dst = n
	}
	if len(fields) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(fields))
		return
	}

	items, err := h.svc.ListItems(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := listItemsResponse{Book: scope.Book, Unit: scope.Unit, Items: make([]itemResponse, len(items))}
	for i := range items {
		resp.Items[i] = toItemResponse(&items[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}
