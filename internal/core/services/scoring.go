package services

import (
	"sort"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
)

const (
	yesWeight   = 3
	maybeWeight = 1
	noWeight    = -2
)

func Score(s domain.SlotStats) int {
	return yesWeight*s.Yes + maybeWeight*s.Maybe + noWeight*s.No
}

// TallyVotes counts votes per slot id. Only the last vote seen for a
// participant on a slot counts, whatever the stored list contains.
func TallyVotes(votes []domain.Vote) map[string]domain.SlotStats {
	latest := make(map[string]map[string]domain.VoteValue)
	for _, v := range votes {
		if v.TimeSlotID == "" {
			continue
		}
		byParticipant, ok := latest[v.TimeSlotID]
		if !ok {
			byParticipant = make(map[string]domain.VoteValue)
			latest[v.TimeSlotID] = byParticipant
		}
		byParticipant[v.ParticipantID] = v.Value
	}

	stats := make(map[string]domain.SlotStats, len(latest))
	for slotID, byParticipant := range latest {
		var s domain.SlotStats
		for _, value := range byParticipant {
			s.Total++
			switch value {
			case domain.VoteYes:
				s.Yes++
			case domain.VoteMaybe:
				s.Maybe++
			case domain.VoteNo:
				s.No++
			}
		}
		stats[slotID] = s
	}
	return stats
}

// ResolveWinner picks the poll's winning slot. A manual winner always wins.
// Otherwise the highest scoring slot with at least one vote wins, and ties
// go to the slot listed first in poll.Slots. Votes on unknown slots are
// ignored.
func ResolveWinner(poll *domain.Poll) (domain.Winner, bool) {
	stats := TallyVotes(poll.Votes)

	if poll.Winner != nil {
		s := stats[poll.Winner.ID]
		return domain.Winner{
			Slot:     *poll.Winner,
			Stats:    s,
			Score:    Score(s),
			IsManual: true,
		}, true
	}

	var (
		best  domain.Winner
		found bool
	)
	for _, slot := range poll.Slots {
		s := stats[slot.ID]
		if s.Total == 0 {
			continue
		}
		score := Score(s)
		if !found || score > best.Score {
			best = domain.Winner{Slot: slot, Stats: s, Score: score}
			found = true
		}
	}
	return best, found
}

// BuildResults assembles the results view: slots in chronological order,
// participant names sorted, and the resolved winner.
func BuildResults(poll *domain.Poll) *domain.PollResults {
	stats := TallyVotes(poll.Votes)

	slots := make([]domain.SlotResult, 0, len(poll.Slots))
	for _, slot := range poll.Slots {
		s := stats[slot.ID]
		slots = append(slots, domain.SlotResult{Slot: slot, Stats: s, Score: Score(s)})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i].Slot, slots[j].Slot
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.StartTime < b.StartTime
	})

	names := make(map[string]struct{})
	for _, v := range poll.Votes {
		names[v.Name] = struct{}{}
	}
	participants := make([]string, 0, len(names))
	for name := range names {
		participants = append(participants, name)
	}
	sort.Strings(participants)

	results := &domain.PollResults{
		PollID:       poll.ID,
		Closed:       poll.IsClosed(),
		Slots:        slots,
		Participants: participants,
		Comments:     poll.Comments,
	}
	if w, ok := ResolveWinner(poll); ok {
		results.Winner = &w
	}
	return results
}
