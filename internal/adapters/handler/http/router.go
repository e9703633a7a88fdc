package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

func NewHandler(auth ports.AuthService, pollHandler *PollHandler, voteHandler *VoteHandler, authHandler *AuthHandler, organizerHandler *OrganizerHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Identify(auth))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/admin", authHandler.AdminLogin)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
			r.Put("/password", authHandler.ChangePassword)
		})

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Post("/", pollHandler.CreatePoll)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", pollHandler.GetPoll)
				r.Put("/", pollHandler.UpdatePoll)
				r.Delete("/", pollHandler.DeletePoll)
				r.Get("/results", pollHandler.Results)
				r.Post("/lifecycle", pollHandler.SetLifecycle)
				r.Put("/winner", pollHandler.SetWinner)
				r.Delete("/winner", pollHandler.ClearWinner)
				r.Delete("/participants/{participantId}", pollHandler.DeleteParticipant)
				r.Post("/votes", voteHandler.SubmitVotes)
			})
		})

		r.Route("/organizers", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/", organizerHandler.ListOrganizers)
			r.Post("/", organizerHandler.CreateOrganizer)
			r.Get("/{id}", organizerHandler.GetOrganizer)
			r.Put("/{id}", organizerHandler.UpdateOrganizer)
			r.Delete("/{id}", organizerHandler.DeleteOrganizer)
		})
	})

	return r
}
