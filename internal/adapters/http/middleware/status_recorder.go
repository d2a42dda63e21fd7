// Package middleware holds the inbound HTTP pipeline for the article API.
//
// main assembles it outermost first:
//
//	Recovery, RequestID, CorrelationID, OpenTelemetry, Logging, CORS, Timeout
//
// Every layer has the shape func(http.Handler) http.Handler and composes
// with Chain.
package middleware

import "net/http"

// statusRecorder remembers what a handler sent so outer layers can log,
// trace and recover after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

// record wraps w, reusing an existing recorder so stacked layers observe the
// same response.
func record(w http.ResponseWriter) *statusRecorder {
	if sr, ok := w.(*statusRecorder); ok {
		return sr
	}
	return &statusRecorder{ResponseWriter: w}
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.wroteHeader {
		return
	}
	sr.status = code
	sr.wroteHeader = true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.wroteHeader {
		sr.status = http.StatusOK
		sr.wroteHeader = true
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// Status is the code sent to the client. A handler that wrote nothing
// produces an implicit 200.
func (sr *statusRecorder) Status() int {
	if !sr.wroteHeader {
		return http.StatusOK
	}
	return sr.status
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}
