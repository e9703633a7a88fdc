package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/slotpoll/internal/core/domain"
	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

// OrganizerHandler serves the admin-only organizer management routes.
type OrganizerHandler struct {
	service ports.OrganizerService
	logger  *log.Logger
}

func NewOrganizerHandler(service ports.OrganizerService, logger *log.Logger) *OrganizerHandler {
	return &OrganizerHandler{
		service: service,
		logger:  logger,
	}
}

type organizerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// organizerResponse never carries the password hash.
type organizerResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toOrganizerResponse(o *domain.Organizer) organizerResponse {
	return organizerResponse{
		ID:        o.ID,
		Username:  o.Username,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (h *OrganizerHandler) ListOrganizers(w http.ResponseWriter, r *http.Request) {
	organizers, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	out := make([]organizerResponse, 0, len(organizers))
	for _, o := range organizers {
		out = append(out, toOrganizerResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrganizerHandler) CreateOrganizer(w http.ResponseWriter, r *http.Request) {
	var req organizerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	organizer, err := h.service.Create(r.Context(), ports.CreateOrganizerInput{Username: req.Username, Password: req.Password})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrganizerResponse(organizer))
}

func (h *OrganizerHandler) GetOrganizer(w http.ResponseWriter, r *http.Request) {
	organizer, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrganizerResponse(organizer))
}

func (h *OrganizerHandler) UpdateOrganizer(w http.ResponseWriter, r *http.Request) {
	var req organizerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	organizer, err := h.service.Update(r.Context(), ports.UpdateOrganizerInput{
		ID:       chi.URLParam(r, "id"),
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrganizerResponse(organizer))
}

func (h *OrganizerHandler) DeleteOrganizer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
