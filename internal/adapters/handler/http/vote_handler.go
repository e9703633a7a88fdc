package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
	logger  *log.Logger
}

func NewVoteHandler(service ports.VoteService, logger *log.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		logger:  logger,
	}
}

type voteItem struct {
	TimeSlotID string           `json:"timeSlotId"`
	Value      domain.VoteValue `json:"value"`
	Comment    string           `json:"comment"`
}

type voteRequest struct {
	ParticipantID string     `json:"participantId"`
	Name          string     `json:"name"`
	Votes         []voteItem `json:"votes"`
	Comment       string     `json:"comment"`
}

type voteResponse struct {
	ParticipantID string       `json:"participantId"`
	Poll          *domain.Poll `json:"poll"`
}

// SubmitVotes is public: participants are identified by the id returned from
// their first submission, not by a session.
func (h *VoteHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	votes := make([]domain.Vote, 0, len(req.Votes))
	for _, v := range req.Votes {
		votes = append(votes, domain.Vote{TimeSlotID: v.TimeSlotID, Value: v.Value, Comment: v.Comment})
	}

	res, err := h.service.SubmitVotes(r.Context(), ports.VoteSubmission{
		PollID:        chi.URLParam(r, "id"),
		ParticipantID: req.ParticipantID,
		Name:          req.Name,
		Votes:         votes,
		Comment:       req.Comment,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, voteResponse{ParticipantID: res.ParticipantID, Poll: res.Poll})
}
