package ports

import (
	"context"
	"time"
)

// Identity is what the session layer vouches for on a request.
type Identity struct {
	OrganizerID string
	IsAdmin     bool
}

type Session struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	LoginOrganizer(ctx context.Context, username, password string) (*Session, error)
	LoginAdmin(ctx context.Context, password string) (*Session, error)
	Identify(organizerToken, adminToken string) Identity
}

type Clock interface {
	Now() time.Time
}
