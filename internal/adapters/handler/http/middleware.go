package http

import (
	"context"
	"net/http"

	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

const (
	OrganizerCookie = "organizer_session"
	AdminCookie     = "admin_session"
)

type contextKey string

const identityKey contextKey = "identity"

// Identify resolves the session cookies once per request. Requests without
// valid cookies carry an empty identity; the services decide what that
// allows.
func Identify(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.Identify(cookieValue(r, OrganizerCookie), cookieValue(r, AdminCookie))
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !identityFrom(r.Context()).IsAdmin {
			writeMessage(w, http.StatusUnauthorized, "admin session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFrom(ctx context.Context) ports.Identity {
	id, _ := ctx.Value(identityKey).(ports.Identity)
	return id
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
