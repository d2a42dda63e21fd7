package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/jsamuelsen11/go-interactor/internal/platform/config"
)

// CORS returns middleware that answers preflight requests and sets CORS
// headers for the configured origins. An empty origin list disables it.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID, headerCorrelationID, "Traceparent"},
		ExposedHeaders: []string{headerRequestID, headerCorrelationID, "Location"},
		MaxAge:         cfg.MaxAge,
	})
}
