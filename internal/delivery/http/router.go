package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/vogiaan1904/codeclash/pkg/logger"
)

func NewRouter(h *HTTPHandler, l logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	r.Use(RequestLogger(l))

	r.Get("/", h.Root)
	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", h.ListQuestions)
		r.Post("/seed-questions", h.SeedQuestions)

		r.Post("/matchmaking/join", h.Join)

		r.Route("/room/{roomID}", func(r chi.Router) {
			r.Get("/", h.GetRoom)
			r.Get("/messages", h.ListMessages)
			r.Post("/messages", h.SendMessage)
			r.Put("/editor", h.UpdateEditor)
		})
	})

	return r
}
