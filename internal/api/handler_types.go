package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

type resourceTypeResponse struct {
	Name      string          `json:"name"`
	Schema    json.RawMessage `json:"schema"`
	CreatedAt time.Time       `json:"created_at"`
}

func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	all, err := h.types.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]resourceTypeResponse, len(all))
	for i, t := range all {
		out[i] = resourceTypeResponse{Name: t.Name, Schema: t.Schema, CreatedAt: t.CreatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetType(w http.ResponseWriter, r *http.Request) {
	t, err := h.types.Get(r.Context(), chi.URLParam(r, "typeName"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resourceTypeResponse{Name: t.Name, Schema: t.Schema, CreatedAt: t.CreatedAt})
}

func (h *Handler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string          `json:"name"`
		Schema json.RawMessage `json:"schema"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, domain.ErrValidation("invalid request body"))
		return
	}

	err := h.types.Create(r.Context(), actorID(r), &domain.ResourceType{
		Name:   req.Name,
		Schema: req.Schema,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
