package dto

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/platform/logging"
)

const (
	problemContentType = "application/problem+json"
	problemTypeBlank   = "about:blank"

	// internalDetail replaces the message of any 5xx other than the mapped
	// upstream statuses, so storage errors never reach clients.
	internalDetail = "the server could not complete the request"
)

// ErrorResponse is an RFC 9457 problem document.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Category string        `json:"category,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail locates one invalid input. Location is "body", "body.<field>",
// "body[i].<field>", "path.<param>" or "query.<param>".
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// NewErrorResponse builds the problem document for err. Instance is the
// request URI.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := StatusFor(err)

	resp := ErrorResponse{
		Type:     problemTypeBlank,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.RequestURI,
	}
	if status == http.StatusInternalServerError {
		resp.Detail = internalDetail
	}
	if cat := domain.Classify(err); cat != domain.CategoryUnknown {
		resp.Category = string(cat)
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = fieldDetails(verr.Fields)
	}
	return resp
}

// WriteErrorResponse writes err as application/problem+json.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	writeProblem(w, r, NewErrorResponse(r, err))
}

// WriteStatus writes a problem for a protocol-level failure that has no
// domain error behind it, such as an unknown route.
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblem(w, r, ErrorResponse{
		Type:     problemTypeBlank,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
	})
}

func writeProblem(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(resp.Status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.FromContext(r.Context()).Error("encoding problem response",
			"error", err,
			"status", resp.Status,
		)
	}
}

// StatusFor maps an error to its HTTP status. A context deadline is checked
// before classification and always yields 504.
func StatusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch domain.Classify(err) {
	case domain.CategoryValidation:
		return http.StatusBadRequest
	case domain.CategoryNotFound:
		return http.StatusNotFound
	case domain.CategoryForbidden:
		return http.StatusForbidden
	case domain.CategoryConflict:
		return http.StatusConflict
	case domain.CategoryUnavailable:
		return http.StatusServiceUnavailable
	case domain.CategoryNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fieldDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		details = append(details, ErrorDetail{Location: location(field), Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return details
}

func location(field string) string {
	switch {
	case field == "body",
		strings.HasPrefix(field, "path."),
		strings.HasPrefix(field, "query."),
		strings.HasPrefix(field, "body."):
		return field
	case strings.HasPrefix(field, "["):
		return "body" + field
	default:
		return "body." + field
	}
}
