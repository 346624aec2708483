package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-codelists/codelist"
)

// languageParam is the query parameter holding the language. Every other
// parameter is passed to the provider as a filter.
const languageParam = "language"

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// newHandler exposes the registry over HTTP:
//
//	GET /codelists           registered ids
//	GET /codelists/{id}      AppOptions for id
func newHandler(registry *codelist.Registry, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /codelists", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, registry.IDs())
	})

	mux.HandleFunc("GET /codelists/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		query := r.URL.Query()

		filters := make(map[string]string, len(query))
		for key, values := range query {
			if key == languageParam || len(values) == 0 {
				continue
			}
			filters[key] = values[0]
		}

		opts, err := registry.GetOptions(r.Context(), id, query.Get(languageParam), filters)
		if err != nil {
			status := statusFor(err)
			logger.WarnContext(r.Context(), "codelist request failed", "id", id, "status", status, "error", err)
			writeJSON(w, status, errorResponse{Error: err.Error(), Code: textCode(err)})
			return
		}

		writeJSON(w, http.StatusOK, opts)
	})

	return mux
}

func statusFor(err error) int {
	switch {
	case codelist.IsUnknownProvider(err):
		return http.StatusNotFound
	case codelist.IsInvalidFilterValue(err):
		return http.StatusBadRequest
	case codelist.IsUpstreamUnavailable(err), codelist.IsMalformedResponse(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func textCode(err error) string {
	var typed *goerrors.Error
	if errors.As(err, &typed) {
		return typed.TextCode
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
