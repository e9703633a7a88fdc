package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type voteService struct {
	pollRepo ports.PollRepository
	locks    *KeyedMutex
	clock    ports.Clock
}

func NewVoteService(pollRepo ports.PollRepository, locks *KeyedMutex, clock ports.Clock) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		locks:    locks,
		clock:    clock,
	}
}

// SubmitVotes merges one participant's batch into the poll. Resubmitting the
// same batch leaves the stored votes unchanged apart from updatedAt.
func (s *voteService) SubmitVotes(ctx context.Context, input ports.VoteSubmission) (*ports.VoteResult, error) {
	name := strings.TrimSpace(input.Name)
	if err := domain.ValidateParticipantName(name); err != nil {
		return nil, err
	}
	for i, v := range input.Votes {
		if v.TimeSlotID == "" {
			return nil, fmt.Errorf("%w: vote %d: time slot id is required", domain.ErrValidation, i)
		}
		if !v.Value.Valid() {
			return nil, fmt.Errorf("%w: vote %d: unknown vote value %q", domain.ErrValidation, i, v.Value)
		}
	}

	unlock := s.locks.Lock(input.PollID)
	defer unlock()

	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}
	if poll.IsClosed() {
		return nil, domain.ErrPollClosed
	}
	if !poll.IsActive() {
		return nil, domain.ErrPollPaused
	}

	comment := strings.TrimSpace(input.Comment)
	if len(input.Votes) == 0 && comment == "" {
		return &ports.VoteResult{ParticipantID: input.ParticipantID, Poll: poll}, nil
	}

	participantID := input.ParticipantID
	if participantID == "" {
		participantID = uuid.NewString()
	}

	poll.Votes = MergeVotes(poll.Votes, input.Votes, poll.ID, participantID, name)
	if comment != "" {
		poll.Comments = upsertComment(poll.Comments, domain.Comment{
			ParticipantID: participantID,
			Name:          name,
			Comment:       comment,
		})
	} else {
		poll.Comments = renameComment(poll.Comments, participantID, name)
	}
	poll.UpdatedAt = s.clock.Now()

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}
	return &ports.VoteResult{ParticipantID: participantID, Poll: poll}, nil
}
