// Package http is the inbound HTTP adapter: routing and server lifecycle.
package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/handlers"
)

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Articles *handlers.ArticleHandler
	Sync     *handlers.SyncHandler
	Health   *handlers.HealthHandler
}

// NewRouter mounts every route behind the given middleware, outermost first.
// Unknown paths and methods get problem responses like every other error.
func NewRouter(h Handlers, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteStatus(w, req, http.StatusNotFound, fmt.Sprintf("no route for %s", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteStatus(w, req, http.StatusMethodNotAllowed,
			fmt.Sprintf("%s is not supported on %s", req.Method, req.URL.Path))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", h.Health.Liveness)
		r.Get("/ready", h.Health.Readiness)
	})

	r.Route(APIPrefix, func(r chi.Router) {
		// Collection writes are atomic batches.
		r.Get("/articles", h.Articles.ListArticles)
		r.Put("/articles", h.Articles.SaveArticle)
		r.Post("/articles", h.Articles.SaveArticles)
		r.Delete("/articles", h.Articles.DeleteArticles)
		r.Get("/articles/{id}", h.Articles.GetArticle)
		r.Delete("/articles/{id}", h.Articles.DeleteArticle)

		r.Get("/sync", h.Sync.SyncStatus)
		r.Post("/sync", h.Sync.StartSync)
	})

	return r
}
