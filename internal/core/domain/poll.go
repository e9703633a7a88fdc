package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	slotDateLayout = "2006-01-02"
	slotTimeLayout = "15:04"
)

type TimeSlot struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Poll struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	Slots       []TimeSlot `json:"slots"`
	Votes       []Vote     `json:"votes"`
	Comments    []Comment  `json:"comments"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	OrganizerID string     `json:"organizerId"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
	Active      *bool      `json:"active,omitempty"`
	Winner      *TimeSlot  `json:"winner,omitempty"`
}

func (p *Poll) IsClosed() bool {
	return p.ClosedAt != nil
}

// IsActive reports whether the poll currently accepts votes. A poll without an
// explicit active flag is active until it is closed.
func (p *Poll) IsActive() bool {
	if p.IsClosed() {
		return false
	}
	return p.Active == nil || *p.Active
}

func (p *Poll) Slot(id string) (TimeSlot, bool) {
	for _, s := range p.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// Validate checks the poll document shape. Votes that reference slots missing
// from Slots are allowed; scoring ignores them.
func (p *Poll) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return validationError("title is required")
	}

	seen := make(map[string]struct{}, len(p.Slots))
	for i, s := range p.Slots {
		if err := s.validate(); err != nil {
			return validationError("slot %d: %v", i, err)
		}
		if _, dup := seen[s.ID]; dup {
			return validationError("duplicate slot id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	type voteKey struct{ participant, slot string }
	keys := make(map[voteKey]struct{}, len(p.Votes))
	for i, v := range p.Votes {
		if err := v.validate(); err != nil {
			return validationError("vote %d: %v", i, err)
		}
		k := voteKey{v.ParticipantID, v.TimeSlotID}
		if _, dup := keys[k]; dup {
			return validationError("duplicate vote for participant %q on slot %q", v.ParticipantID, v.TimeSlotID)
		}
		keys[k] = struct{}{}
	}

	for i, c := range p.Comments {
		if c.ParticipantID == "" {
			return validationError("comment %d: participant id is required", i)
		}
	}

	if p.Winner != nil {
		if _, ok := seen[p.Winner.ID]; !ok {
			return validationError("winner %q is not one of the poll slots", p.Winner.ID)
		}
	}
	return nil
}

func (s TimeSlot) validate() error {
	if s.ID == "" {
		return errorString("id is required")
	}
	if _, err := time.Parse(slotDateLayout, s.Date); err != nil {
		return errorString("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(slotTimeLayout, s.StartTime); err != nil {
		return errorString("start time must be HH:MM")
	}
	if _, err := time.Parse(slotTimeLayout, s.EndTime); err != nil {
		return errorString("end time must be HH:MM")
	}
	return nil
}

func (v Vote) validate() error {
	if v.ParticipantID == "" {
		return errorString("participant id is required")
	}
	if v.TimeSlotID == "" {
		return errorString("time slot id is required")
	}
	if err := checkName(v.Name); err != nil {
		return err
	}
	if !v.Value.Valid() {
		return errorString("unknown vote value")
	}
	return nil
}

// ValidateParticipantName enforces the 1..60 character display name rule.
func ValidateParticipantName(name string) error {
	if err := checkName(name); err != nil {
		return validationError("%v", err)
	}
	return nil
}

func checkName(name string) error {
	if n := utf8.RuneCountInString(name); n == 0 || n > MaxParticipantNameLength {
		return errorString("name must be between 1 and 60 characters")
	}
	return nil
}

type errorString string

func (e errorString) Error() string { return string(e) }
