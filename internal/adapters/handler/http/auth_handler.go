package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type AuthHandler struct {
	authService      ports.AuthService
	organizerService ports.OrganizerService
	secureCookies    bool
	logger           *log.Logger
}

func NewAuthHandler(authService ports.AuthService, organizerService ports.OrganizerService, secureCookies bool, logger *log.Logger) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		organizerService: organizerService,
		secureCookies:    secureCookies,
		logger:           logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type meResponse struct {
	OrganizerID string `json:"organizerId,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.authService.LoginOrganizer(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.setSessionCookie(w, OrganizerCookie, session)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.authService.LoginAdmin(r.Context(), req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.setSessionCookie(w, AdminCookie, session)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// Logout clears both session cookies. Tokens are stateless, so nothing is
// revoked server side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.expireCookie(w, OrganizerCookie)
	h.expireCookie(w, AdminCookie)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())
	writeJSON(w, http.StatusOK, meResponse{OrganizerID: id.OrganizerID, IsAdmin: id.IsAdmin})
}

// ChangePassword lets a signed in organizer replace their own password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	organizerID := identityFrom(r.Context()).OrganizerID
	if organizerID == "" {
		writeMessage(w, http.StatusUnauthorized, "organizer session required")
		return
	}

	var req passwordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "password is required")
		return
	}

	if _, err := h.organizerService.Update(r.Context(), ports.UpdateOrganizerInput{ID: organizerID, Password: req.Password}); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, name string, session *ports.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
	})
}

func (h *AuthHandler) expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
