package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// HealthHandler serves the orchestrator probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler reads readiness from registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is the check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.HealthResponse{Status: dto.HealthOK})
}

// Readiness handles GET /health/ready: 200 while every required dependency
// is healthy (degraded optional ones included), 503 otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp, ready := dto.ToReadinessResponse(h.registry.CheckAll(r.Context()))

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, r, code, resp)
}
