package ports

import (
	"context"
	"errors"
)

// ErrDegraded marks a failed check on a dependency the service can run
// without. The readiness probe reports it but stays ready.
var ErrDegraded = errors.New("degraded")

// HealthChecker reports whether one dependency can serve requests.
type HealthChecker interface {
	// Name labels the result, e.g. "store:sqlite" or "article-feed".
	Name() string

	// HealthCheck returns nil when healthy. It must honor ctx.
	HealthCheck(ctx context.Context) error
}

// Optional is implemented by checkers whose dependency is not required to
// serve traffic. Their failures are reported wrapped in ErrDegraded.
type Optional interface {
	Optional() bool
}

// HealthRegistry runs every registered checker for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll returns one entry per checker name; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
