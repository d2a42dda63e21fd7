package middleware

import "net/http"

// Chain composes middleware into one. The first argument is the outermost
// layer, so
//
//	Chain(Recovery(logger), RequestID(), Logging(logger))(handler)
//
// is Recovery(RequestID(Logging(handler))). Nil entries are skipped, which
// lets callers leave optional layers out without rebuilding the list.
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			if middlewares[i] == nil {
				continue
			}
			handler = middlewares[i](handler)
		}
		return handler
	}
}
