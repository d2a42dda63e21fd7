package dto

import (
	"errors"

	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// Overall and per-check health states.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthDegraded = "degraded"
	HealthNotReady = "not_ready"
	HealthFailing  = "failing"
)

// CheckResult is one dependency's entry in a readiness report.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the body of both health probes. Checks is omitted on
// liveness.
type HealthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// ToReadinessResponse folds registry results into a report. Any failing
// check makes the service not ready; degraded checks alone leave it ready
// but flagged. ready reports whether traffic should be routed here.
func ToReadinessResponse(results map[string]error) (resp HealthResponse, ready bool) {
	resp = HealthResponse{Status: HealthReady, Checks: make(map[string]CheckResult, len(results))}
	ready = true

	for name, err := range results {
		switch {
		case err == nil:
			resp.Checks[name] = CheckResult{Status: HealthOK}
		case errors.Is(err, ports.ErrDegraded):
			resp.Checks[name] = CheckResult{Status: HealthDegraded, Error: err.Error()}
			if ready {
				resp.Status = HealthDegraded
			}
		default:
			resp.Checks[name] = CheckResult{Status: HealthFailing, Error: err.Error()}
			ready = false
			resp.Status = HealthNotReady
		}
	}
	return resp, ready
}
