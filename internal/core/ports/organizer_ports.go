package ports

import (
	"context"
	"iter"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
)

type OrganizerRepository interface {
	Save(ctx context.Context, organizer *domain.Organizer) error
	GetByID(ctx context.Context, id string) (*domain.Organizer, error)
	GetByUsername(ctx context.Context, username string) (*domain.Organizer, error)
	List(ctx context.Context) iter.Seq2[*domain.Organizer, error]
	Delete(ctx context.Context, id string) error
}

type CreateOrganizerInput struct {
	Username string
	Password string
}

// UpdateOrganizerInput leaves a field unchanged when it is empty.
type UpdateOrganizerInput struct {
	ID       string
	Username string
	Password string
}

type OrganizerService interface {
	Create(ctx context.Context, input CreateOrganizerInput) (*domain.Organizer, error)
	Update(ctx context.Context, input UpdateOrganizerInput) (*domain.Organizer, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Organizer, error)
	List(ctx context.Context) ([]*domain.Organizer, error)
}
