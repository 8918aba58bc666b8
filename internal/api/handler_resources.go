package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

type shareRequest struct {
	GranteeID   string `json:"grantee_id"`
	GranteeType string `json:"grantee_type"`
	AccessLevel string `json:"access_level"`
}

func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "resourceType")

	list, err := h.resources.List(r.Context(), actorID(r), resourceType)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]resourceResponse, len(list))
	for i := range list {
		out[i] = toResourceResponse(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "resourceType")

	var req domain.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, domain.ErrValidation("invalid request body"))
		return
	}

	res, err := h.resources.Create(r.Context(), actorID(r), resourceType, req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResourceResponse(res))
}

func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	res, err := h.resources.Get(r.Context(), actorID(r), chi.URLParam(r, "resourceID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toResourceResponse(res))
}

func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, domain.ErrValidation("invalid request body"))
		return
	}

	res, err := h.resources.Update(r.Context(), actorID(r), chi.URLParam(r, "resourceID"), req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toResourceResponse(res))
}

func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := h.resources.Delete(r.Context(), actorID(r), chi.URLParam(r, "resourceID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ShareResource records or updates a grant on a resource. Only admins of
// the target may share it.
func (h *Handler) ShareResource(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		respondError(w, h.logger, domain.ErrUnauthorized("authentication required"))
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, domain.ErrValidation("invalid request body"))
		return
	}

	err := h.sharing.Grant(r.Context(), actor, chi.URLParam(r, "resourceID"),
		req.GranteeID, req.GranteeType, req.AccessLevel)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
