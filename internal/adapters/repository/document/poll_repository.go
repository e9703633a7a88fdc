package document

import (
	"context"
	"fmt"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type PollRepository struct {
	polls *collection[domain.Poll]
}

func NewPollRepository(store ports.RecordStore, logger *log.Logger) *PollRepository {
	return &PollRepository{
		polls: newCollection(store, PollsCollection, logger, validateStoredPoll),
	}
}

func validateStoredPoll(id string, p *domain.Poll) error {
	if p.ID != id {
		return fmt.Errorf("document id %q does not match record id %q", p.ID, id)
	}
	if p.OrganizerID == "" {
		return fmt.Errorf("organizer id is missing")
	}
	return p.Validate()
}

func (r *PollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	if poll.ID == "" {
		return fmt.Errorf("%w: poll id is required", domain.ErrValidation)
	}
	return r.polls.put(ctx, poll.ID, poll)
}

func (r *PollRepository) GetByID(ctx context.Context, id string) (*domain.Poll, error) {
	poll, err := r.polls.get(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrPollNotFound, id)
	}
	return poll, nil
}

func (r *PollRepository) List(ctx context.Context) iter.Seq2[*domain.Poll, error] {
	return r.polls.all(ctx)
}

func (r *PollRepository) Delete(ctx context.Context, id string) error {
	if err := r.polls.delete(ctx, id); err != nil {
		return notFound(err, domain.ErrPollNotFound, id)
	}
	return nil
}

// SkippedRecords reports how many malformed poll documents listings have
// skipped since the repository was created.
func (r *PollRepository) SkippedRecords() uint64 {
	return r.polls.skipped.Load()
}
