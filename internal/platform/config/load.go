package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
}

// WithConfigDir points Load at a directory other than ./configs.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.configDir = dir
	}
}

// layer is one configuration source. Later layers win.
type layer struct {
	name     string
	provider koanf.Provider
	parser   koanf.Parser
}

// Load builds the configuration for profile from, lowest precedence first:
// built-in defaults, base.yaml, <profile>.yaml, then APP_* environment
// variables. The result is validated before it is returned.
//
// Environment names are matched against the keys the earlier layers defined,
// so underscores inside a key survive:
//
//	APP_SERVER_READ_TIMEOUT      -> server.read_timeout
//	APP_FEED_RETRY_MAX_ATTEMPTS  -> feed.retry.max_attempts
//	APP_CORS_ALLOWED_ORIGINS=a,b -> cors.allowed_origins: [a b]
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := loadOptions{configDir: defaultConfigDir}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	for _, l := range fileLayers(o.configDir, profile) {
		if err := k.Load(l.provider, l.parser); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.name, err)
		}
	}
	if err := k.Load(envLayer(k), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config for profile %q: %w", profile, err)
	}
	return &cfg, nil
}

func fileLayers(dir, profile string) []layer {
	base := filepath.Join(dir, "base.yaml")
	prof := filepath.Join(dir, profile+".yaml")
	return []layer{
		{name: "defaults", provider: defaultsProvider{}},
		{name: base, provider: file.Provider(base), parser: yaml.Parser()},
		{name: prof, provider: file.Provider(prof), parser: yaml.Parser()},
	}
}

// envLayer maps APP_* variables onto the keys already present in k. Unknown
// variables fall back to treating every underscore as nesting. Values for
// list keys are split on commas.
func envLayer(k *koanf.Koanf) koanf.Provider {
	known := make(map[string]string)
	for _, key := range k.Keys() {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}

	return env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(name, value string) (string, any) {
			name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
			key, ok := known[name]
			if !ok {
				return strings.ReplaceAll(name, "_", "."), value
			}
			if isList(k.Get(key)) {
				return key, strings.Split(value, ",")
			}
			return key, value
		},
	})
}

func isList(v any) bool {
	switch v.(type) {
	case []any, []string:
		return true
	default:
		return false
	}
}

// validateProfile keeps the profile a bare file name inside the config dir.
func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("profile %q must be a plain name without path elements", profile)
	default:
		return nil
	}
}
