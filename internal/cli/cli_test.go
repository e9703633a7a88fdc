package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/slotpoll/internal/adapters/repository/document"
	"github.com/vncsmyrnk/slotpoll/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/slotpoll/internal/bootstrap"
	"github.com/vncsmyrnk/slotpoll/internal/config"
	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

const defaultTimeout = time.Minute

func setupContext(t *testing.T) (*Context, *bytes.Buffer, *memory.RecordStore) {
	t.Helper()
	store := memory.NewRecordStore()
	app, err := bootstrap.NewWithStore(store, config.Config{SessionSecret: "secret"}, log.New(io.Discard))
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return &Context{App: app, Out: out}, out, store
}

func seedPoll(t *testing.T, ctx *Context, organizerID string) string {
	t.Helper()
	background := context.Background()
	id, err := ctx.App.Polls.CreateOrUpdate(background, &domain.Poll{
		Title: "Board games",
		Slots: []domain.TimeSlot{
			{ID: "fri", Date: "2026-06-05", StartTime: "19:00", EndTime: "23:00"},
			{ID: "sat", Date: "2026-06-06", StartTime: "15:00", EndTime: "20:00"},
		},
	}, organizerID)
	require.NoError(t, err)

	_, err = ctx.App.Votes.SubmitVotes(background, ports.VoteSubmission{
		PollID: id, Name: "Ann",
		Votes: []domain.Vote{{TimeSlotID: "sat", Value: domain.VoteYes}},
	})
	require.NoError(t, err)
	return id
}

func TestOrganizerCommands(t *testing.T) {
	ctx, out, _ := setupContext(t)

	require.NoError(t, (&OrganizerCreateCmd{Username: "alice", Password: "pw"}).Run(ctx))
	assert.Contains(t, out.String(), "created organizer alice")

	err := (&OrganizerCreateCmd{Username: "alice", Password: "pw"}).Run(ctx)
	assert.ErrorIs(t, err, domain.ErrConflict)

	out.Reset()
	require.NoError(t, (&OrganizerListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "alice")
	assert.NotContains(t, out.String(), "$2a$")

	organizers, err := ctx.App.Organizers.List(context.Background())
	require.NoError(t, err)
	require.Len(t, organizers, 1)

	require.NoError(t, (&OrganizerDeleteCmd{ID: organizers[0].ID}).Run(ctx))
	assert.ErrorIs(t, (&OrganizerDeleteCmd{ID: organizers[0].ID}).Run(ctx), domain.ErrNotFound)
}

func TestPollListReportsSkippedRecords(t *testing.T) {
	ctx, out, store := setupContext(t)
	id := seedPoll(t, ctx, "org-1")
	seedPoll(t, ctx, "org-2")
	require.NoError(t, store.Put(context.Background(), document.PollsCollection, "broken", []byte("{")))

	require.NoError(t, (&PollListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), id)
	assert.Contains(t, out.String(), "org-2")
	assert.Contains(t, out.String(), "1 unreadable poll records skipped")

	out.Reset()
	require.NoError(t, (&PollListCmd{Organizer: "org-1"}).Run(ctx))
	assert.Contains(t, out.String(), id)
	assert.NotContains(t, out.String(), "org-2")
}

func TestPollResultsCommand(t *testing.T) {
	ctx, out, _ := setupContext(t)
	id := seedPoll(t, ctx, "org-1")

	require.NoError(t, (&PollResultsCmd{ID: id, JSON: true}).Run(ctx))
	var results domain.PollResults
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.NotNil(t, results.Winner)
	assert.Equal(t, "sat", results.Winner.Slot.ID)

	out.Reset()
	require.NoError(t, (&PollResultsCmd{ID: id}).Run(ctx))
	assert.Contains(t, out.String(), "2026-06-06")

	assert.ErrorIs(t, (&PollResultsCmd{ID: "missing"}).Run(ctx), domain.ErrNotFound)
}

func TestSummarizeCommand(t *testing.T) {
	ctx, out, _ := setupContext(t)
	id := seedPoll(t, ctx, "org-1")

	require.NoError(t, (&SummarizeCmd{JSON: true, Timeout: defaultTimeout}).Run(ctx))
	var summaries []domain.WinnerSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, id, summaries[0].PollID)

	out.Reset()
	require.NoError(t, (&SummarizeCmd{Timeout: defaultTimeout}).Run(ctx))
	assert.Contains(t, out.String(), "Board games")
}
