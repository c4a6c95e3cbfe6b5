package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mining_hub/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/catalog/{category}", func(r chi.Router) {
				r.Get("/", handler(s.getV1Catalog))
				r.Get("/ores/{key}/sellers", handler(s.getV1OreSellers))
			})

			r.Get("/ships", handler(s.getV1Ships))

			r.Route("/basket/{category}", func(r chi.Router) {
				r.Get("/", handler(s.getV1Basket))
				r.Post("/toggle", handler(s.postV1BasketToggle))
				r.Put("/quantity", handler(s.putV1BasketQuantity))
				r.Put("/active", handler(s.putV1BasketActive))
			})

			r.Post("/reset", handler(s.postV1Reset))

			r.Get("/summary/{category}", handler(s.getV1Summary))

			r.Route("/live/{category}", func(r chi.Router) {
				r.Post("/refresh", handler(s.postV1LiveRefresh))
				r.Get("/status", handler(s.getV1LiveStatus))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, asFailure(err))
		}
	}
}
