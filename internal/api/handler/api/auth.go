// internal/api/handler/api/auth.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/stockml/stockml/internal/api/response"
	"github.com/stockml/stockml/internal/core"
	"github.com/stockml/stockml/internal/metrics"
	"github.com/stockml/stockml/internal/session"
)

// AuthHandler serves the session endpoints.
type AuthHandler struct {
	sessions *session.Store
	metrics  *metrics.Registry
}

// NewAuthHandler creates a new auth handler. The metrics registry may
// be nil.
func NewAuthHandler(sessions *session.Store, reg *metrics.Registry) *AuthHandler {
	return &AuthHandler{sessions: sessions, metrics: reg}
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the request body for registering.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	user, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	h.setActive(true)
	response.JSON(w, http.StatusOK, user)
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	user, err := h.sessions.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	h.setActive(true)
	response.JSON(w, http.StatusCreated, user)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		response.DomainError(w, err)
		return
	}

	h.setActive(false)
	response.JSON(w, http.StatusOK, map[string]any{
		"loggedOut": true,
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.Current()
	if user == nil {
		response.DomainError(w, core.ErrNotAuthenticated)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setActive(active bool) {
	if h.metrics != nil {
		h.metrics.SetSessionActive(active)
	}
}
