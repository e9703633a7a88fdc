package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/slotpoll/internal/adapters/repository/document"
	"github.com/vncsmyrnk/slotpoll/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	store *memory.RecordStore
	polls ports.PollRepository
	clock *testClock
	poll  ports.PollService
	votes ports.VoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewRecordStore()
	polls := document.NewPollRepository(store, nil)
	clock := newTestClock()
	locks := NewKeyedMutex()
	return &testEnv{
		store: store,
		polls: polls,
		clock: clock,
		poll:  NewPollService(polls, locks, clock),
		votes: NewVoteService(polls, locks, clock),
	}
}

func testSlots() []domain.TimeSlot {
	return []domain.TimeSlot{
		{ID: "s1", Date: "2026-06-02", StartTime: "18:00", EndTime: "19:00"},
		{ID: "s2", Date: "2026-06-01", StartTime: "18:00", EndTime: "19:00"},
		{ID: "s3", Date: "2026-06-01", StartTime: "09:00", EndTime: "10:00"},
	}
}

func (e *testEnv) createPoll(t *testing.T, organizerID string) string {
	t.Helper()
	id, err := e.poll.CreateOrUpdate(context.Background(), &domain.Poll{
		Title: "Offsite",
		Slots: testSlots(),
	}, organizerID)
	require.NoError(t, err)
	return id
}

// storedDocument returns the raw bytes currently persisted for a poll.
func (e *testEnv) storedDocument(t *testing.T, id string) []byte {
	t.Helper()
	data, err := e.store.Get(context.Background(), document.PollsCollection, id)
	require.NoError(t, err)
	return data
}
