package document

import (
	"context"
	"fmt"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type OrganizerRepository struct {
	organizers *collection[domain.Organizer]
}

func NewOrganizerRepository(store ports.RecordStore, logger *log.Logger) *OrganizerRepository {
	return &OrganizerRepository{
		organizers: newCollection(store, OrganizersCollection, logger, validateStoredOrganizer),
	}
}

func validateStoredOrganizer(id string, o *domain.Organizer) error {
	if o.ID != id {
		return fmt.Errorf("document id %q does not match record id %q", o.ID, id)
	}
	return o.Validate()
}

func (r *OrganizerRepository) Save(ctx context.Context, organizer *domain.Organizer) error {
	if organizer.ID == "" {
		return fmt.Errorf("%w: organizer id is required", domain.ErrValidation)
	}
	return r.organizers.put(ctx, organizer.ID, organizer)
}

func (r *OrganizerRepository) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	organizer, err := r.organizers.get(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrOrganizerNotFound, id)
	}
	return organizer, nil
}

// GetByUsername scans the collection; organizer counts are small.
func (r *OrganizerRepository) GetByUsername(ctx context.Context, username string) (*domain.Organizer, error) {
	for organizer, err := range r.organizers.all(ctx) {
		if err != nil {
			return nil, err
		}
		if organizer.Username == username {
			return organizer, nil
		}
	}
	return nil, fmt.Errorf("%w: username %q", domain.ErrOrganizerNotFound, username)
}

func (r *OrganizerRepository) List(ctx context.Context) iter.Seq2[*domain.Organizer, error] {
	return r.organizers.all(ctx)
}

func (r *OrganizerRepository) Delete(ctx context.Context, id string) error {
	if err := r.organizers.delete(ctx, id); err != nil {
		return notFound(err, domain.ErrOrganizerNotFound, id)
	}
	return nil
}

func (r *OrganizerRepository) SkippedRecords() uint64 {
	return r.organizers.skipped.Load()
}
