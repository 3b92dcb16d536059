// Package api exposes the ingestion pipeline over HTTP: validate or
// normalize a posted document, or ingest one or more identity URLs.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pipid/ingester/engine"
	"github.com/pipid/ingester/ingest"
	"github.com/pipid/ingester/normalize"
	"github.com/pipid/ingester/store"
)

const maxRequestBodySize = 10 << 20 // 10MB

// Deps carries the pipeline components the handlers use.
type Deps struct {
	Ingester   *ingest.Ingester
	Validator  *engine.Validator
	Normalizer *normalize.Normalizer

	// Cache optionally serves single-URL ingests from the persistent
	// store. Nil disables caching.
	Cache *store.CachedIngester

	Logger *slog.Logger
}

// NewHandler builds the HTTP API router.
func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Normalizer == nil {
		deps.Normalizer = normalize.New(nil)
	}

	r := chi.NewRouter()
	r.Use(requestLogger(deps.Logger))

	r.Get("/healthz", handleHealth)
	r.Get("/v1/metrics", handleMetrics(deps))
	r.Post("/v1/validate", handleValidate(deps))
	r.Post("/v1/normalize", handleNormalize(deps))
	r.Post("/v1/ingest", handleIngest(deps))

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Type       string   `json:"type"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

func httpError(w http.ResponseWriter, status int, errType, format string, args ...any) {
	writeJSON(w, status, errorBody{Error: errorDetail{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}})
}
