package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
)

var errPanicked = errors.New("handler panicked")

// Recovery turns a handler panic into a 500 problem response and an ERROR log
// with the stack. The panic value never reaches the client. When the handler
// had already started its response only the log is written.
//
// http.ErrAbortHandler is re-raised so net/http can abort the connection
// quietly.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := record(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity, as net/http does
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					panicAttr(v),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", RequestIDFromContext(r.Context())),
					slog.Bool("response_started", sr.wroteHeader),
				)
				if !sr.wroteHeader {
					dto.WriteErrorResponse(sr, r, errPanicked)
				}
			}()
			next.ServeHTTP(sr, r)
		})
	}
}

func panicAttr(v any) slog.Attr {
	if err, ok := v.(error); ok {
		return slog.String("panic", err.Error())
	}
	return slog.String("panic", fmt.Sprint(v))
}
