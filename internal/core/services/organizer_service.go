package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type organizerService struct {
	repo       ports.OrganizerRepository
	clock      ports.Clock
	bcryptCost int
}

func NewOrganizerService(repo ports.OrganizerRepository, clock ports.Clock) ports.OrganizerService {
	return &organizerService{
		repo:       repo,
		clock:      clock,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *organizerService) Create(ctx context.Context, input ports.CreateOrganizerInput) (*domain.Organizer, error) {
	username := strings.TrimSpace(input.Username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if err := s.ensureUsernameFree(ctx, username, ""); err != nil {
		return nil, err
	}

	hash, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	organizer := &domain.Organizer{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Save(ctx, organizer); err != nil {
		return nil, err
	}
	return organizer, nil
}

func (s *organizerService) Update(ctx context.Context, input ports.UpdateOrganizerInput) (*domain.Organizer, error) {
	organizer, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(input.Username); username != "" && username != organizer.Username {
		if err := domain.ValidateUsername(username); err != nil {
			return nil, err
		}
		if err := s.ensureUsernameFree(ctx, username, organizer.ID); err != nil {
			return nil, err
		}
		organizer.Username = username
	}

	if input.Password != "" {
		hash, err := s.hash(input.Password)
		if err != nil {
			return nil, err
		}
		organizer.PasswordHash = hash
	}

	organizer.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, organizer); err != nil {
		return nil, err
	}
	return organizer, nil
}

func (s *organizerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *organizerService) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every organizer, newest first.
func (s *organizerService) List(ctx context.Context) ([]*domain.Organizer, error) {
	var organizers []*domain.Organizer
	for organizer, err := range s.repo.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list organizers: %w", err)
		}
		organizers = append(organizers, organizer)
	}
	slices.SortStableFunc(organizers, func(a, b *domain.Organizer) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return organizers, nil
}

func (s *organizerService) ensureUsernameFree(ctx context.Context, username, ownID string) error {
	existing, err := s.repo.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownID:
		return domain.ErrUsernameTaken
	}
	return nil
}

func (s *organizerService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return string(hash), nil
}
