package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
	logger  *log.Logger
}

func NewPollHandler(service ports.PollService, logger *log.Logger) *PollHandler {
	return &PollHandler{
		service: service,
		logger:  logger,
	}
}

type pollRequest struct {
	Title       string            `json:"title"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	Slots       []domain.TimeSlot `json:"slots"`
	Active      *bool             `json:"active"`
}

func (req pollRequest) toPoll(id string) *domain.Poll {
	return &domain.Poll{
		ID:          id,
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		Slots:       req.Slots,
		Active:      req.Active,
	}
}

type pollIDResponse struct {
	ID string `json:"id"`
}

type lifecycleRequest struct {
	Action string `json:"action"`
}

type winnerRequest struct {
	TimeSlotID string `json:"timeSlotId"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.service.CreateOrUpdate(r.Context(), req.toPoll(""), identityFrom(r.Context()).OrganizerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, pollIDResponse{ID: id})
}

func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.service.CreateOrUpdate(r.Context(), req.toPoll(chi.URLParam(r, "id")), identityFrom(r.Context()).OrganizerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pollIDResponse{ID: id})
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.service.Fetch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, poll)
}

// ListPolls returns the polls of the organizer behind the session cookie.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.ListForOrganizer(r.Context(), identityFrom(r.Context()).OrganizerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}
	writeJSON(w, http.StatusOK, polls)
}

func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePoll(r.Context(), chi.URLParam(r, "id"), identityFrom(r.Context()).OrganizerID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Results(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *PollHandler) SetLifecycle(w http.ResponseWriter, r *http.Request) {
	var req lifecycleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	transition, err := domain.ParseTransition(req.Action)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	poll, err := h.service.SetLifecycle(r.Context(), chi.URLParam(r, "id"), transition, identityFrom(r.Context()).OrganizerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) SetWinner(w http.ResponseWriter, r *http.Request) {
	var req winnerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TimeSlotID == "" {
		writeMessage(w, http.StatusBadRequest, "timeSlotId is required")
		return
	}
	h.setWinner(w, r, &domain.TimeSlot{ID: req.TimeSlotID})
}

func (h *PollHandler) ClearWinner(w http.ResponseWriter, r *http.Request) {
	h.setWinner(w, r, nil)
}

func (h *PollHandler) setWinner(w http.ResponseWriter, r *http.Request, slot *domain.TimeSlot) {
	poll, err := h.service.SetWinner(r.Context(), chi.URLParam(r, "id"), slot, identityFrom(r.Context()).OrganizerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteVotesForParticipant(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "participantId"), identityFrom(r.Context()).OrganizerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
