package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

func TestSubmitVotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createPoll(t, "org-1")
	env.clock.Advance(time.Minute)

	res, err := env.votes.SubmitVotes(ctx, ports.VoteSubmission{
		PollID:  id,
		Name:    "  Ann ",
		Comment: "  late arrival ",
		Votes: []domain.Vote{
			{TimeSlotID: "s1", Value: domain.VoteYes},
			{TimeSlotID: "s2", Value: domain.VoteMaybe},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ParticipantID, "participant id is minted when missing")

	poll, err := env.poll.Fetch(ctx, id)
	require.NoError(t, err)
	require.Len(t, poll.Votes, 2)
	for _, v := range poll.Votes {
		assert.Equal(t, res.ParticipantID, v.ParticipantID)
		assert.Equal(t, "Ann", v.Name)
		assert.Equal(t, id, v.PollID)
	}
	assert.Equal(t, []domain.Comment{{ParticipantID: res.ParticipantID, Name: "Ann", Comment: "late arrival"}}, poll.Comments)
	assert.Equal(t, env.clock.Now(), poll.UpdatedAt)
}

func TestSubmitVotesIdempotentResubmission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createPoll(t, "org-1")

	submission := ports.VoteSubmission{
		PollID: id, ParticipantID: "u1", Name: "Ann", Comment: "ok",
		Votes: []domain.Vote{{TimeSlotID: "s1", Value: domain.VoteYes}, {TimeSlotID: "s3", Value: domain.VoteNo}},
	}
	first, err := env.votes.SubmitVotes(ctx, submission)
	require.NoError(t, err)
	second, err := env.votes.SubmitVotes(ctx, submission)
	require.NoError(t, err)

	assert.Equal(t, first.Poll.Votes, second.Poll.Votes)
	assert.Equal(t, first.Poll.Comments, second.Poll.Comments)
}

func TestSubmitVotesChangesAnswerInPlace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createPoll(t, "org-1")

	_, err := env.votes.SubmitVotes(ctx, ports.VoteSubmission{
		PollID: id, ParticipantID: "u1", Name: "Ann",
		Votes: []domain.Vote{{TimeSlotID: "s1", Value: domain.VoteYes}},
	})
	require.NoError(t, err)
	res, err := env.votes.SubmitVotes(ctx, ports.VoteSubmission{
		PollID: id, ParticipantID: "u1", Name: "Ann",
		Votes: []domain.Vote{{TimeSlotID: "s1", Value: domain.VoteNo}},
	})
	require.NoError(t, err)

	require.Len(t, res.Poll.Votes, 1)
	assert.Equal(t, domain.VoteNo, res.Poll.Votes[0].Value)
}

func TestSubmitVotesRenameKeepsOneParticipant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createPoll(t, "org-1")

	_, err := env.votes.SubmitVotes(ctx, ports.VoteSubmission{
		PollID: id, ParticipantID: "u1", Name: "Ann", Comment: "hi",
		Votes: []domain.Vote{{TimeSlotID: "s1", Value: domain.VoteYes}},
	})
	require.NoError(t, err)
	_, err = env.votes.SubmitVotes(ctx, ports.VoteSubmission{
		PollID: id, ParticipantID: "u1", Name: "Annie",
		Votes: []domain.Vote{{TimeSlotID: "s2", Value: domain.VoteNo}},
	})
	require.NoError(t, err)

	results, err := env.poll.Results(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Annie"}, results.Participants)
	assert.Equal(t, []domain.Comment{{ParticipantID: "u1", Name: "Annie", Comment: "hi"}}, results.Comments)
}

func TestSubmitVotesEmptyBatchWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createPoll(t, "org-1")
	before := env.storedDocument(t, id)
	env.clock.Advance(time.Minute)

	res, err := env.votes.SubmitVotes(ctx, ports.VoteSubmission{PollID: id, Name: "Ann", Comment: "   "})
	require.NoError(t, err)
	assert.Empty(t, res.ParticipantID)
	assert.Equal(t, before, env.storedDocument(t, id))
}

func TestSubmitVotesRejectsPausedAndClosed(t *testing.T) {
	for _, transition := range []domain.Transition{domain.TransitionPause, domain.TransitionClose} {
		t.Run(string(transition), func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			id := env.createPoll(t, "org-1")
			_, err := env.poll.SetLifecycle(ctx, id, transition, "org-1")
			require.NoError(t, err)
			before := env.storedDocument(t, id)

			_, err = env.votes.SubmitVotes(ctx, ports.VoteSubmission{
				PollID: id, Name: "Ann",
				Votes: []domain.Vote{{TimeSlotID: "s1", Value: domain.VoteYes}},
			})
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Equal(t, before, env.storedDocument(t, id))
		})
	}
}

func TestSubmitVotesValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createPoll(t, "org-1")

	tests := []struct {
		name       string
		submission ports.VoteSubmission
		wantErr    error
	}{
		{"empty name", ports.VoteSubmission{PollID: id, Name: "   "}, domain.ErrValidation},
		{"long name", ports.VoteSubmission{PollID: id, Name: strings.Repeat("x", 61)}, domain.ErrValidation},
		{"missing slot", ports.VoteSubmission{PollID: id, Name: "Ann", Votes: []domain.Vote{{Value: domain.VoteYes}}}, domain.ErrValidation},
		{"bad value", ports.VoteSubmission{PollID: id, Name: "Ann", Votes: []domain.Vote{{TimeSlotID: "s1", Value: "sure"}}}, domain.ErrValidation},
		{"unknown poll", ports.VoteSubmission{PollID: "nope", Name: "Ann"}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.votes.SubmitVotes(ctx, tt.submission)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := env.votes.SubmitVotes(ctx, ports.VoteSubmission{PollID: id, Name: strings.Repeat("é", 60)})
	assert.NoError(t, err)
}

func TestSubmitVotesConcurrentParticipants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createPoll(t, "org-1")

	const participants = 20
	var wg sync.WaitGroup
	for i := range participants {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.votes.SubmitVotes(ctx, ports.VoteSubmission{
				PollID:        id,
				ParticipantID: fmt.Sprintf("u%d", i),
				Name:          fmt.Sprintf("Person %d", i),
				Votes:         []domain.Vote{{TimeSlotID: "s1", Value: domain.VoteYes}},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	results, err := env.poll.Results(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, results.Winner)
	assert.Equal(t, participants, results.Winner.Stats.Yes)
	assert.Len(t, results.Participants, participants)
}
