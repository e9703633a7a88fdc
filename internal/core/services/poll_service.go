package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type pollService struct {
	repo  ports.PollRepository
	locks *KeyedMutex
	clock ports.Clock
}

func NewPollService(repo ports.PollRepository, locks *KeyedMutex, clock ports.Clock) ports.PollService {
	return &pollService{
		repo:  repo,
		locks: locks,
		clock: clock,
	}
}

// CreateOrUpdate stores the organizer-editable part of a poll. Votes,
// comments, closedAt and winner always come from storage, never from input.
func (s *pollService) CreateOrUpdate(ctx context.Context, input *domain.Poll, organizerID string) (string, error) {
	if organizerID == "" {
		return "", domain.ErrMissingOrganizer
	}
	if input == nil {
		return "", fmt.Errorf("%w: poll is required", domain.ErrValidation)
	}

	if input.ID == "" {
		return s.create(ctx, input, organizerID)
	}

	unlock := s.locks.Lock(input.ID)
	defer unlock()

	poll, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return "", err
	}
	if poll.OrganizerID != organizerID {
		return "", domain.ErrNotPollOwner
	}

	// Slots of a closed poll are frozen so its winner cannot move.
	if poll.IsClosed() && !slices.Equal(poll.Slots, input.Slots) {
		return "", fmt.Errorf("%w: slots cannot change", domain.ErrPollClosed)
	}

	poll.Title = strings.TrimSpace(input.Title)
	poll.Location = input.Location
	poll.Description = input.Description
	poll.Slots = slices.Clone(input.Slots)
	if input.Active != nil {
		poll.Active = input.Active
	}

	if poll.Winner != nil && !poll.IsClosed() {
		if slot, ok := poll.Slot(poll.Winner.ID); ok {
			poll.Winner = &slot
		} else {
			poll.Winner = nil
		}
	}

	if err := poll.Validate(); err != nil {
		return "", err
	}
	poll.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, poll); err != nil {
		return "", err
	}
	return poll.ID, nil
}

func (s *pollService) create(ctx context.Context, input *domain.Poll, organizerID string) (string, error) {
	now := s.clock.Now()
	poll := &domain.Poll{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Location:    input.Location,
		Description: input.Description,
		Slots:       slices.Clone(input.Slots),
		Votes:       []domain.Vote{},
		Comments:    []domain.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
		OrganizerID: organizerID,
		Active:      input.Active,
	}
	if poll.Slots == nil {
		poll.Slots = []domain.TimeSlot{}
	}
	if err := poll.Validate(); err != nil {
		return "", err
	}
	if err := s.repo.Save(ctx, poll); err != nil {
		return "", err
	}
	return poll.ID, nil
}

func (s *pollService) Fetch(ctx context.Context, id string) (*domain.Poll, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForOrganizer returns the organizer's polls, newest first.
func (s *pollService) ListForOrganizer(ctx context.Context, organizerID string) ([]*domain.Poll, error) {
	if organizerID == "" {
		return nil, domain.ErrMissingOrganizer
	}

	var polls []*domain.Poll
	for poll, err := range s.repo.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list polls: %w", err)
		}
		if poll.OrganizerID == organizerID {
			polls = append(polls, poll)
		}
	}

	slices.SortStableFunc(polls, func(a, b *domain.Poll) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return polls, nil
}

func (s *pollService) SetLifecycle(ctx context.Context, id string, transition domain.Transition, organizerID string) (*domain.Poll, error) {
	return s.mutate(ctx, id, organizerID, func(poll *domain.Poll) (bool, error) {
		if poll.IsClosed() {
			switch transition {
			case domain.TransitionClose:
				return false, nil
			case domain.TransitionReopen:
				poll.ClosedAt = nil
				return true, nil
			case domain.TransitionActivate, domain.TransitionPause:
				return false, domain.ErrPollClosed
			}
			return false, fmt.Errorf("%w: unknown lifecycle transition %q", domain.ErrValidation, transition)
		}

		switch transition {
		case domain.TransitionActivate:
			if poll.IsActive() {
				return false, nil
			}
			poll.Active = boolPtr(true)
		case domain.TransitionPause:
			if !poll.IsActive() {
				return false, nil
			}
			poll.Active = boolPtr(false)
		case domain.TransitionClose:
			closedAt := s.clock.Now()
			poll.ClosedAt = &closedAt
		case domain.TransitionReopen:
			return false, domain.ErrPollNotClosed
		default:
			return false, fmt.Errorf("%w: unknown lifecycle transition %q", domain.ErrValidation, transition)
		}
		return true, nil
	})
}

// SetWinner stores a copy of the poll's own slot as the manual winner, or
// clears the override when slot is nil.
func (s *pollService) SetWinner(ctx context.Context, id string, slot *domain.TimeSlot, organizerID string) (*domain.Poll, error) {
	return s.mutate(ctx, id, organizerID, func(poll *domain.Poll) (bool, error) {
		if poll.IsClosed() {
			return false, domain.ErrPollClosed
		}
		if slot == nil {
			if poll.Winner == nil {
				return false, nil
			}
			poll.Winner = nil
			return true, nil
		}

		stored, ok := poll.Slot(slot.ID)
		if !ok {
			return false, fmt.Errorf("%w: slot %q is not part of poll %s", domain.ErrValidation, slot.ID, poll.ID)
		}
		poll.Winner = &stored
		return true, nil
	})
}

func (s *pollService) DeleteVotesForParticipant(ctx context.Context, id, participantID, organizerID string) error {
	if participantID == "" {
		return fmt.Errorf("%w: participant id is required", domain.ErrValidation)
	}
	_, err := s.mutate(ctx, id, organizerID, func(poll *domain.Poll) (bool, error) {
		if poll.IsClosed() {
			return false, domain.ErrPollClosed
		}
		return removeParticipant(poll, participantID) > 0, nil
	})
	return err
}

func (s *pollService) DeletePoll(ctx context.Context, id, organizerID string) error {
	if organizerID == "" {
		return domain.ErrMissingOrganizer
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	poll, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if poll.OrganizerID != organizerID {
		return domain.ErrNotPollOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *pollService) Results(ctx context.Context, id string) (*domain.PollResults, error) {
	poll, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildResults(poll), nil
}

// mutate runs fn on the stored poll while holding the poll's lock. The poll is
// saved with a fresh updatedAt only when fn reports a change.
func (s *pollService) mutate(ctx context.Context, id, organizerID string, fn func(*domain.Poll) (bool, error)) (*domain.Poll, error) {
	if organizerID == "" {
		return nil, domain.ErrMissingOrganizer
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	poll, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if poll.OrganizerID != organizerID {
		return nil, domain.ErrNotPollOwner
	}

	changed, err := fn(poll)
	if err != nil {
		return nil, err
	}
	if !changed {
		return poll, nil
	}

	poll.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}
	return poll, nil
}

func boolPtr(b bool) *bool { return &b }
