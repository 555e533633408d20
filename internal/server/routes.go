package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stashboard/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", handler(s.getV1Dashboard))
				r.Post("/", handler(s.postV1Dashboard))
			})
			r.Get("/sales", handler(s.getV1Sales))
			r.Get("/rates", handler(s.getV1Rates))
			r.Post("/reset", handler(s.postV1Reset))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
