package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Activity    *ActivityHandler
	Response    *ResponseHandler
	Round       *RoundHandler
	Leaderboard *LeaderboardHandler
	Roster      *RosterHandler
}

func NewHandler(h Handlers, jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/events/{eventID}", func(r chi.Router) {
			r.Get("/activities", h.Activity.ListEventActivities)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Post("/", h.Activity.CreateActivity)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Activity.GetActivity)
				r.Patch("/", h.Activity.UpdateActivity)
				r.Delete("/", h.Activity.DeleteActivity)

				r.Post("/start", h.Activity.StartActivity)
				r.Post("/end", h.Activity.EndActivity)
				r.Post("/advance", h.Activity.AdvanceRound)
				r.Post("/logos", h.Activity.SeedLogos)

				r.Get("/round", h.Round.GetCurrentRound)
				r.Get("/results", h.Leaderboard.GetResults)
				r.Get("/leaderboard", h.Leaderboard.GetLeaderboard)
				r.Get("/can-join", h.Roster.CanJoin)

				r.Group(func(r chi.Router) {
					r.Use(ParticipantAuth(jwtSecret))
					r.Post("/join", h.Roster.Join)
					r.Post("/responses", h.Response.SubmitResponse)
				})
			})
		})
	})

	return r
}
