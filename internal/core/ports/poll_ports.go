package ports

import (
	"context"
	"iter"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id string) (*domain.Poll, error)
	// List yields every valid poll. Corrupt documents are skipped; only
	// listing-wide failures are yielded as errors.
	List(ctx context.Context) iter.Seq2[*domain.Poll, error]
	Delete(ctx context.Context, id string) error
}

type PollService interface {
	CreateOrUpdate(ctx context.Context, poll *domain.Poll, organizerID string) (string, error)
	Fetch(ctx context.Context, id string) (*domain.Poll, error)
	ListForOrganizer(ctx context.Context, organizerID string) ([]*domain.Poll, error)
	SetLifecycle(ctx context.Context, id string, transition domain.Transition, organizerID string) (*domain.Poll, error)
	SetWinner(ctx context.Context, id string, slot *domain.TimeSlot, organizerID string) (*domain.Poll, error)
	DeleteVotesForParticipant(ctx context.Context, id, participantID, organizerID string) error
	DeletePoll(ctx context.Context, id, organizerID string) error
	Results(ctx context.Context, id string) (*domain.PollResults, error)
}
