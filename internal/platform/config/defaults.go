package config

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

const (
	defaultServerPort = 8080

	defaultExecutorWorkers   = 4
	defaultExecutorQueueSize = 64

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultCORSMaxAge = 300
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":                 "0.0.0.0",
		"server.port":                 defaultServerPort,
		"server.read_timeout":         "5s",
		"server.write_timeout":        "10s",
		"server.idle_timeout":         "120s",
		"server.shutdown_timeout":     "15s",
		"server.request_timeout":      "30s",
		"server.health_check_timeout": "2s",

		"log.level":  "info",
		"log.format": "json",

		"store.driver":    DriverSQLite,
		"store.dsn":       "file:articles.db",
		"store.fast_tier": false,

		"executor.workers":         defaultExecutorWorkers,
		"executor.queue_size":      defaultExecutorQueueSize,
		"executor.rate_per_second": 0,
		"executor.burst":           0,
		"executor.notify_timeout":  "1s",

		"feed.base_url":                        "http://localhost:8081",
		"feed.path":                            "/articles",
		"feed.timeout":                         "30s",
		"feed.retry.max_attempts":              defaultRetryMaxAttempts,
		"feed.retry.initial_interval":          "100ms",
		"feed.retry.max_interval":              "10s",
		"feed.retry.multiplier":                defaultRetryMultiplier,
		"feed.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"feed.circuit_breaker.timeout":         "30s",
		"feed.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"feed.rate_limit.requests_per_second":  0,
		"feed.rate_limit.burst_size":           0,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "go-interactor",

		"cors.allowed_origins": []string{"*"},
		"cors.max_age":         defaultCORSMaxAge,
	}
}

// defaultsProvider feeds defaults() into koanf as the lowest layer.
type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("defaults provider does not support ReadBytes")
}

func (defaultsProvider) Read() (map[string]any, error) {
	return maps.Unflatten(defaults(), "."), nil
}
