package api

import (
	"encoding/json"
	"errors"
	"net/http"

	pi "github.com/pipid/ingester"
)

// IngestRequest asks for one URL or a batch. Exactly one of URL and
// URLs should be set; URL wins when both are.
type IngestRequest struct {
	URL  string   `json:"url,omitempty"`
	URLs []string `json:"urls,omitempty"`
}

// BatchFailure is one failed URL in a batch response.
type BatchFailure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// BatchResponse carries the outcomes of a batch ingest.
type BatchResponse struct {
	Identities []map[string]any `json:"identities"`
	Failures   []BatchFailure   `json:"failures,omitempty"`
}

func handleValidate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, ok := decodeBody(w, r)
		if !ok {
			return
		}

		result := deps.Validator.ValidateValue(r.Context(), value)
		defer result.Release()

		writeJSON(w, http.StatusOK, result.Clone())
	}
}

func handleNormalize(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, ok := decodeBody(w, r)
		if !ok {
			return
		}

		normalized, err := deps.Normalizer.Apply(value)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, normalized)
	}
}

func handleIngest(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req IngestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request", "invalid request body: %v", err)
			return
		}

		switch {
		case req.URL != "":
			identity, err := deps.ingestOne(r, req.URL)
			if err != nil {
				writeErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, identity)

		case len(req.URLs) > 0:
			items, failures, err := deps.Ingester.IngestAll(r.Context(), req.URLs)
			if err != nil && !errors.Is(err, pi.ErrAllFailed) {
				writeErr(w, err)
				return
			}

			resp := BatchResponse{Identities: make([]map[string]any, 0, len(items))}
			for _, item := range items {
				resp.Identities = append(resp.Identities, item.Identity)
			}
			for _, f := range failures {
				resp.Failures = append(resp.Failures, BatchFailure{URL: f.URL, Error: f.Err.Error()})
			}

			status := http.StatusOK
			if errors.Is(err, pi.ErrAllFailed) {
				status = http.StatusBadGateway
			}
			writeJSON(w, status, resp)

		default:
			httpError(w, http.StatusBadRequest, "invalid_request", "either url or urls is required")
		}
	}
}

func (d Deps) ingestOne(r *http.Request, url string) (map[string]any, error) {
	if d.Cache != nil {
		return d.Cache.Ingest(r.Context(), url)
	}
	return d.Ingester.Ingest(r.Context(), url)
}

func handleMetrics(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ingest":     deps.Ingester.Metrics().Snapshot(),
			"validation": deps.Validator.Metrics().Snapshot(),
		})
	}
}

// decodeBody parses the request body as arbitrary JSON, writing the
// error response itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request) (any, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var value any
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body: %v", err)
		return nil, false
	}
	return value, true
}

// writeErr maps pipeline error kinds to HTTP statuses.
func writeErr(w http.ResponseWriter, err error) {
	var (
		invalidInput  *pi.InvalidInputError
		timeoutErr    *pi.TimeoutError
		networkErr    *pi.NetworkError
		statusErr     *pi.HTTPStatusError
		parseErr      *pi.ParseError
		validationErr *pi.ValidationError
		normErr       *pi.NormalizationError
	)

	switch {
	case errors.As(err, &invalidInput):
		httpError(w, http.StatusBadRequest, "invalid_input", "%v", err)
	case errors.As(err, &timeoutErr):
		httpError(w, http.StatusGatewayTimeout, "timeout", "%v", err)
	case errors.As(err, &statusErr):
		httpError(w, http.StatusBadGateway, "upstream_status", "%v", err)
	case errors.As(err, &networkErr):
		httpError(w, http.StatusBadGateway, "network", "%v", err)
	case errors.As(err, &parseErr):
		httpError(w, http.StatusUnprocessableEntity, "parse", "%v", err)
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: errorDetail{
			Type:       "validation",
			Message:    err.Error(),
			Violations: validationErr.Violations,
		}})
	case errors.As(err, &normErr):
		httpError(w, http.StatusUnprocessableEntity, "normalization", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "internal", "%v", err)
	}
}
