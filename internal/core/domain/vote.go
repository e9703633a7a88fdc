package domain

import (
	"encoding/json"
	"fmt"
)

// VoteValue is a participant's answer for one slot. The zero value means the
// participant has not decided yet.
type VoteValue string

const (
	VoteUndecided VoteValue = ""
	VoteYes       VoteValue = "yes"
	VoteNo        VoteValue = "no"
	VoteMaybe     VoteValue = "ifNeedBe"
)

func (v VoteValue) Valid() bool {
	switch v {
	case VoteUndecided, VoteYes, VoteNo, VoteMaybe:
		return true
	}
	return false
}

// UnmarshalJSON accepts "maybe" as an alias of the stored "ifNeedBe" spelling.
func (v *VoteValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "maybe" {
		s = string(VoteMaybe)
	}
	value := VoteValue(s)
	if !value.Valid() {
		return fmt.Errorf("unknown vote value %q", s)
	}
	*v = value
	return nil
}

const MaxParticipantNameLength = 60

type Vote struct {
	ParticipantID string    `json:"participantId"`
	PollID        string    `json:"pollId"`
	Name          string    `json:"name"`
	TimeSlotID    string    `json:"timeSlotId"`
	Value         VoteValue `json:"value,omitempty"`
	Comment       string    `json:"comment,omitempty"`
}

// Comment is a free-text note attached to a participant's whole submission.
type Comment struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	Comment       string `json:"comment"`
}
