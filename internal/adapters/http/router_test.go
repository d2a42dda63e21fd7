package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/jsamuelsen11/go-interactor/internal/adapters/http"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
	"github.com/jsamuelsen11/go-interactor/mocks"
)

type routerFixture struct {
	handler  http.Handler
	svc      *mocks.MockArticleService
	registry *mocks.MockHealthRegistry
}

func newRouterFixture(t *testing.T, middlewares ...func(http.Handler) http.Handler) routerFixture {
	t.Helper()
	f := routerFixture{
		svc:      mocks.NewMockArticleService(t),
		registry: mocks.NewMockHealthRegistry(t),
	}
	f.handler = adapthttp.NewRouter(adapthttp.Handlers{
		Articles: handlers.NewArticleHandler(f.svc),
		Sync:     handlers.NewSyncHandler(f.svc),
		Health:   handlers.NewHealthHandler(f.registry),
	}, middlewares...)
	return f
}

func (f routerFixture) do(method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNewRouter_Routes(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	mux, ok := f.handler.(chi.Routes)
	require.True(t, ok, "router does not expose chi.Routes")

	var got []string
	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		got = append(got, method+" "+route)
		return nil
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"GET /health/live",
		"GET /health/ready",
		"GET /api/v1/articles",
		"PUT /api/v1/articles",
		"POST /api/v1/articles",
		"DELETE /api/v1/articles",
		"GET /api/v1/articles/{id}",
		"DELETE /api/v1/articles/{id}",
		"GET /api/v1/sync",
		"POST /api/v1/sync",
	}, got)
}

func TestNewRouter_MiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	f := newRouterFixture(t, tag("outer"), tag("inner"))
	rec := f.do(http.MethodGet, "/health/live")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestNewRouter_DispatchesToHandlers(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.svc.EXPECT().GetArticle(mock.Anything, "a-1").Return(&article.Article{ID: "a-1", Title: "t"}, nil)
	f.svc.EXPECT().LastSync(mock.Anything).Return(ports.SyncStatus{State: ports.SyncIdle})
	f.registry.EXPECT().CheckAll(mock.Anything).Return(map[string]error{})

	for _, target := range []string{"/api/v1/articles/a-1", "/api/v1/sync", "/health/ready"} {
		rec := f.do(http.MethodGet, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestNewRouter_UnroutedRequestsGetProblems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantDetail string
	}{
		{"unknown path", http.MethodGet, "/api/v2/articles", http.StatusNotFound, "no route for /api/v2/articles"},
		{"unknown method", http.MethodPatch, "/api/v1/articles", http.StatusMethodNotAllowed, "PATCH is not supported on /api/v1/articles"},
		{"unknown method on item", http.MethodPut, "/api/v1/articles/a-1", http.StatusMethodNotAllowed, "PUT is not supported on /api/v1/articles/a-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := newRouterFixture(t).do(tt.method, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantDetail, body.Detail)
			assert.Equal(t, tt.target, body.Instance)
		})
	}
}
