package domain

// SlotStats is the tally of one slot. Total counts participants with any vote
// on the slot, including undecided ones.
type SlotStats struct {
	Yes   int `json:"yes"`
	Maybe int `json:"ifNeedBe"`
	No    int `json:"no"`
	Total int `json:"total"`
}

type SlotResult struct {
	Slot  TimeSlot  `json:"slot"`
	Stats SlotStats `json:"stats"`
	Score int       `json:"score"`
}

type Winner struct {
	Slot     TimeSlot  `json:"slot"`
	Stats    SlotStats `json:"stats"`
	Score    int       `json:"score"`
	IsManual bool      `json:"isManual"`
}

type PollResults struct {
	PollID       string       `json:"pollId"`
	Closed       bool         `json:"closed"`
	Slots        []SlotResult `json:"slots"`
	Participants []string     `json:"participants"`
	Comments     []Comment    `json:"comments"`
	Winner       *Winner      `json:"winner,omitempty"`
}

// WinnerSummary is one line of the periodic winner report.
type WinnerSummary struct {
	PollID      string  `json:"pollId"`
	Title       string  `json:"title"`
	OrganizerID string  `json:"organizerId"`
	Closed      bool    `json:"closed"`
	Winner      *Winner `json:"winner,omitempty"`
}
