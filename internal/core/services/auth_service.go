package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
	"github.com/vncsmyrnk/slotpoll/internal/core/session"
)

const (
	SessionTTL   = 8 * time.Hour
	adminSubject = "admin"
)

type AuthService struct {
	organizers      ports.OrganizerRepository
	organizerTokens *session.Codec
	adminTokens     *session.Codec
	adminPassword   string
	clock           ports.Clock
	logger          *log.Logger

	// dummyHash keeps unknown-username logins as slow as wrong-password ones.
	dummyHash func() []byte
}

func NewAuthService(organizers ports.OrganizerRepository, codec *session.Codec, adminPassword string, clock ports.Clock, logger *log.Logger) *AuthService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	codec = codec.WithClock(clock.Now)
	return &AuthService{
		organizers:      organizers,
		organizerTokens: codec.Scoped(session.KindOrganizer),
		adminTokens:     codec.Scoped(session.KindAdmin),
		adminPassword:   adminPassword,
		clock:           clock,
		logger:          logger,
		dummyHash: sync.OnceValue(func() []byte {
			h, _ := bcrypt.GenerateFromPassword([]byte("slotpoll-dummy-password"), bcrypt.DefaultCost)
			return h
		}),
	}
}

func (s *AuthService) LoginOrganizer(ctx context.Context, username, password string) (*ports.Session, error) {
	organizer, err := s.organizers.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
		s.logger.Info("organizer login rejected", "reason", "unknown username")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(organizer.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("organizer login rejected", "reason", "wrong password", "organizer", organizer.ID)
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(s.organizerTokens, organizer.ID)
}

// LoginAdmin checks the configured admin password. An empty configured
// password disables admin login.
func (s *AuthService) LoginAdmin(_ context.Context, password string) (*ports.Session, error) {
	if s.adminPassword == "" || subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		s.logger.Info("admin login rejected")
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(s.adminTokens, adminSubject)
}

// Identify resolves the session cookies of a request. Invalid or expired
// tokens resolve to no identity rather than an error.
func (s *AuthService) Identify(organizerToken, adminToken string) ports.Identity {
	var id ports.Identity
	if organizerToken != "" {
		if subject, err := s.organizerTokens.Verify(organizerToken); err == nil {
			id.OrganizerID = subject
		}
	}
	if adminToken != "" {
		if subject, err := s.adminTokens.Verify(adminToken); err == nil && subject == adminSubject {
			id.IsAdmin = true
		}
	}
	return id
}

func (s *AuthService) issue(codec *session.Codec, subject string) (*ports.Session, error) {
	expiresAt := s.clock.Now().Add(SessionTTL)
	token, err := codec.Issue(subject, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &ports.Session{Token: token, ExpiresAt: expiresAt}, nil
}
