// Package httpserver exposes the service over a JSON HTTP API.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kpetrakis/catsnatch/internal/service"
)

// New builds the HTTP router. fetchCount is the default batch size for the
// fetch endpoint when the request does not override it.
func New(queries service.CatQueries, ingest service.IngestService, log *zap.Logger, fetchCount int) http.Handler {
	h := &handler{
		queries:    queries,
		ingest:     ingest,
		log:        log,
		fetchCount: fetchCount,
	}

	r := chi.NewRouter()
	r.Use(Recover(log))
	r.Use(Logging(log))
	r.Use(Metrics)

	r.Route("/api/cats", func(r chi.Router) {
		r.Post("/fetch", h.fetchCats)
		r.Get("/", h.listCats)
		r.Get("/{id}", h.getCat)
		r.Get("/{id}/image", h.getCatImage)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
