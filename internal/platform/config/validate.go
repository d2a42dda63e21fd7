package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Store.validate(),
		c.Executor.validate(),
		c.Feed.validate("feed"),
		c.Telemetry.validate(),
		c.CORS.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if s.RequestTimeout < 0 {
		errs = append(errs, errors.New("server.request_timeout must not be negative"))
	}
	if s.HealthCheckTimeout <= 0 {
		errs = append(errs, errors.New("server.health_check_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (s *StoreConfig) validate() error {
	var errs []error

	switch s.Driver {
	case DriverSQLite:
		if s.DSN == "" {
			errs = append(errs, errors.New("store.dsn must not be empty for the sqlite driver"))
		}
	case DriverMemDB:
		// No DSN needed.
	default:
		errs = append(errs, fmt.Errorf("store.driver must be one of: %s, %s; got %q", DriverSQLite, DriverMemDB, s.Driver))
	}

	return errors.Join(errs...)
}

func (e *ExecutorConfig) validate() error {
	var errs []error

	if e.Workers < 1 {
		errs = append(errs, fmt.Errorf("executor.workers must be >= 1, got %d", e.Workers))
	}
	if e.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("executor.queue_size must not be negative, got %d", e.QueueSize))
	}
	if e.RatePerSecond < 0 {
		errs = append(errs, fmt.Errorf("executor.rate_per_second must not be negative, got %f", e.RatePerSecond))
	}
	if e.RatePerSecond > 0 && e.Burst < 1 {
		errs = append(errs, fmt.Errorf("executor.burst must be >= 1 when rate limiting, got %d", e.Burst))
	}
	if e.NotifyTimeout < 0 {
		errs = append(errs, errors.New("executor.notify_timeout must not be negative"))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate(section string) error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s.base_url must not be empty", section))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s.timeout must be positive", section))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%s.retry.max_attempts must be >= 1, got %d", section, cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("%s.retry.multiplier must be positive, got %f", section, cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("%s.circuit_breaker.max_failures must be >= 1, got %d",
			section, cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.requests_per_second must not be negative, got %f",
			section, cl.RateLimit.RequestsPerSecond))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.burst_size must be >= 1 when rate limiting, got %d",
			section, cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (c *CORSConfig) validate() error {
	if c.MaxAge < 0 {
		return fmt.Errorf("cors.max_age must not be negative, got %d", c.MaxAge)
	}
	return nil
}
