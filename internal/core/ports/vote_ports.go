package ports

import (
	"context"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
)

// VoteSubmission is one participant's batch for a poll. An empty ParticipantID
// makes the service mint one.
type VoteSubmission struct {
	PollID        string
	ParticipantID string
	Name          string
	Votes         []domain.Vote
	Comment       string
}

type VoteResult struct {
	ParticipantID string
	Poll          *domain.Poll
}

type VoteService interface {
	SubmitVotes(ctx context.Context, submission VoteSubmission) (*VoteResult, error)
}
