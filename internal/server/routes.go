package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tradebot/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", handler(s.getV1Reviews))
				r.Post("/{id}", handler(s.postV1Review))
			})
			r.Get("/stock", handler(s.getV1Stock))
			r.Get("/stats", handler(s.getV1Stats))
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
