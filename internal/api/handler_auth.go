package api

import (
	"encoding/json"
	"net/http"

	"github.com/marcelofalero/swse-architech/internal/domain"
	"github.com/marcelofalero/swse-architech/internal/middleware"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, domain.ErrValidation("invalid request body"))
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok", "user_id": user.ID})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, domain.ErrValidation("invalid request body"))
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// FederatedLogin exchanges a federated identity token, passed as the
// token query parameter, for a local session token.
func (h *Handler) FederatedLogin(w http.ResponseWriter, r *http.Request) {
	idToken := r.URL.Query().Get("token")
	if idToken == "" {
		respondError(w, h.logger, domain.ErrValidation("token query parameter is required"))
		return
	}

	token, err := h.accounts.FederatedLogin(r.Context(), idToken)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the authenticated principal.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, domain.ErrUnauthorized("authentication required"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":    p.ID,
		"email": p.Email,
		"name":  p.Name,
	})
}
