package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marcelofalero/swse-architech/internal/domain"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type memberRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, domain.ErrValidation("invalid request body"))
		return
	}

	group, err := h.groups.Create(r.Context(), actorID(r), req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":       group.ID,
		"name":     group.Name,
		"owner_id": group.OwnerID,
	})
}

func (h *Handler) AddGroupMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, domain.ErrValidation("invalid request body"))
		return
	}

	err := h.groups.AddMember(r.Context(), actorID(r), chi.URLParam(r, "groupID"), req.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) RemoveGroupMember(w http.ResponseWriter, r *http.Request) {
	err := h.groups.RemoveMember(r.Context(), actorID(r),
		chi.URLParam(r, "groupID"), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListGroupMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.groups.ListMembers(r.Context(), actorID(r), chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.UserID
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": out})
}
