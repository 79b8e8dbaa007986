// Package session exposes the admin gate over HTTP and guards the rest of
// the API behind it. Each request gets a gate over that caller's cookies, so
// one client signing in or out never changes another's session.
package session

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/auth"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/respond"
)

// LoginPath is where RequireAuth sends anonymous callers.
const LoginPath = "/api/v1/auth/login"

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/session", h.session)
}

// gate restores the caller's session from its request cookies.
func (h *Handler) gate(w http.ResponseWriter, r *http.Request) *auth.Gate {
	return auth.NewGate(newCookieStorage(w, r), h.logger)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, respond.CodeBadRequest, err.Error())
		return
	}

	gate := h.gate(w, r)
	if !gate.Login(req.Username, req.Password) {
		respond.Fail(w, respond.CodeUnauthorized, "invalid username or password")
		return
	}

	respond.JSON(w, http.StatusOK, current(gate))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.gate(w, r).Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, current(h.gate(w, r)))
}

func current(gate *auth.Gate) sessionResponse {
	username, ok := gate.Username()

	return sessionResponse{Authenticated: ok, Username: username}
}

// RequireAuth rejects requests whose caller is anonymous.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := h.gate(w, r).State().(auth.Authenticated); !ok {
			w.Header().Set("Location", LoginPath)
			respond.Fail(w, respond.CodeUnauthorized, "sign in required")

			return
		}

		next.ServeHTTP(w, r)
	})
}
