package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/platform/logging"
)

// maxJSONBodyBytes caps request bodies at 1 MiB.
const maxJSONBodyBytes = 1 << 20

// parseID returns the named chi path parameter, trimmed.
func parseID(r *http.Request, param string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, param))
	if id == "" {
		return "", domain.Invalid("path."+param, domain.MsgRequired)
	}
	return id, nil
}

// parseIDs splits a comma-separated query parameter into trimmed, non-blank
// IDs. ok is false when the parameter is absent.
func parseIDs(r *http.Request, param string) (ids []string, ok bool, err error) {
	q := r.URL.Query()
	if !q.Has(param) {
		return nil, false, nil
	}
	for raw := range strings.SplitSeq(q.Get(param), ",") {
		if id := strings.TrimSpace(raw); id != "" {
			ids = append(ids, id)
		}
	}
	switch {
	case len(ids) == 0:
		return nil, true, domain.Invalid("query."+param, "must list at least one id")
	case len(ids) > dto.MaxBatchSize:
		return nil, true, domain.Invalid("query."+param, "lists too many ids")
	}
	return ids, true, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("encoding response body", "error", err)
	}
}

// decodeJSONBody reads exactly one JSON value from the request body into dst.
// Unknown fields, trailing data and oversized bodies are validation errors.
func decodeJSONBody(r *http.Request, w http.ResponseWriter, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return domain.Invalid("body", "exceeds 1 MiB")
		case errors.Is(err, io.EOF):
			return domain.Invalid("body", domain.MsgRequired)
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			return domain.Invalid("body", strings.TrimPrefix(err.Error(), "json: "))
		default:
			return domain.Invalid("body", "invalid JSON")
		}
	}
	if dec.More() {
		return domain.Invalid("body", "must contain a single JSON value")
	}
	return nil
}

type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the body into dst and runs its Validate method,
// writing a problem response and returning false on either failure.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	err := decodeJSONBody(r, w, dst)
	if err == nil {
		err = dst.Validate()
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
