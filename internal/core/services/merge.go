package services

import (
	"slices"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
)

// MergeVotes applies one participant's batch to the existing vote list.
//
// Every incoming vote is stamped with pollID, participantID and name, and the
// participant's earlier votes take the same name. A vote for a slot the
// participant already answered replaces that entry in place; anything else is
// appended. Votes of other participants keep their order. An empty batch
// returns the existing votes unchanged.
func MergeVotes(existing, incoming []domain.Vote, pollID, participantID, name string) []domain.Vote {
	merged := slices.Clone(existing)
	if len(incoming) == 0 {
		return merged
	}

	position := make(map[string]int)
	for i, v := range merged {
		if v.ParticipantID == participantID {
			position[v.TimeSlotID] = i
			merged[i].Name = name
		}
	}

	for _, v := range incoming {
		v.PollID = pollID
		v.ParticipantID = participantID
		v.Name = name

		if i, ok := position[v.TimeSlotID]; ok {
			merged[i] = v
			continue
		}
		position[v.TimeSlotID] = len(merged)
		merged = append(merged, v)
	}
	return merged
}

func upsertComment(comments []domain.Comment, c domain.Comment) []domain.Comment {
	out := slices.Clone(comments)
	for i := range out {
		if out[i].ParticipantID == c.ParticipantID {
			out[i] = c
			return out
		}
	}
	return append(out, c)
}

func renameComment(comments []domain.Comment, participantID, name string) []domain.Comment {
	out := slices.Clone(comments)
	for i := range out {
		if out[i].ParticipantID == participantID {
			out[i].Name = name
		}
	}
	return out
}

func removeParticipant(poll *domain.Poll, participantID string) (removed int) {
	keptVotes := poll.Votes[:0:0]
	for _, v := range poll.Votes {
		if v.ParticipantID == participantID {
			removed++
			continue
		}
		keptVotes = append(keptVotes, v)
	}
	poll.Votes = keptVotes

	keptComments := poll.Comments[:0:0]
	for _, c := range poll.Comments {
		if c.ParticipantID == participantID {
			removed++
			continue
		}
		keptComments = append(keptComments, c)
	}
	poll.Comments = keptComments
	return removed
}
