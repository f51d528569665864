// Package config loads trailgauge configuration from YAML with environment
// overrides. Endpoint resolution happens exactly once, at load time; nothing
// re-resolves per request.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Request encodings. Exactly one is active for a configured client.
const (
	EncodingText = "text"
	EncodingJSON = "json"
)

// Environment values for endpoint resolution.
const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

type Config struct {
	// Endpoint, when set, is used verbatim and skips resolution.
	Endpoint string `yaml:"endpoint"`

	// Environment selects between LocalURL and ProductionURL.
	Environment   string `yaml:"environment"`
	LocalURL      string `yaml:"local_url"`
	ProductionURL string `yaml:"production_url"`

	// Encoding is the outbound request encoding: "text" or "json".
	Encoding string `yaml:"encoding"`

	// TimeoutSeconds bounds a single audit request. No retries follow a
	// timeout; recovery is user-initiated re-submission.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Patterns overrides the built-in confidence pattern list. Order is
	// priority; each expression captures one numeral group.
	Patterns []string `yaml:"patterns"`

	Logging LoggingConfig `yaml:"logging"`
	Gauge   GaugeConfig   `yaml:"gauge"`
}

type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

type GaugeConfig struct {
	// AnimationMillis is the duration of the counter animation.
	AnimationMillis int `yaml:"animation_millis"`
}

// Load reads configuration from a YAML file. A missing file yields the
// default config; environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)
	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Environment:    EnvProduction,
		LocalURL:       "http://localhost:10000/audit",
		ProductionURL:  "https://audittrail-api.onrender.com/audit",
		Encoding:       EncodingText,
		TimeoutSeconds: 120,
		Logging: LoggingConfig{
			Enabled: false,
			File:    "trailgauge.log",
		},
		Gauge: GaugeConfig{
			AnimationMillis: 900,
		},
	}
}

func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.Environment == "" {
		cfg.Environment = def.Environment
	}
	if cfg.LocalURL == "" {
		cfg.LocalURL = def.LocalURL
	}
	if cfg.ProductionURL == "" {
		cfg.ProductionURL = def.ProductionURL
	}
	if cfg.Encoding == "" {
		cfg.Encoding = def.Encoding
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = def.TimeoutSeconds
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = def.Logging.File
	}
	if cfg.Gauge.AnimationMillis <= 0 {
		cfg.Gauge.AnimationMillis = def.Gauge.AnimationMillis
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRAILGAUGE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TRAILGAUGE_ENV"); v != "" {
		cfg.Environment = strings.ToLower(v)
	}
}

func validate(cfg *Config) error {
	switch cfg.Encoding {
	case EncodingText, EncodingJSON:
	default:
		return fmt.Errorf("unknown request encoding %q (want %q or %q)", cfg.Encoding, EncodingText, EncodingJSON)
	}
	switch cfg.Environment {
	case EnvLocal, EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q (want %q or %q)", cfg.Environment, EnvLocal, EnvProduction)
	}
	return nil
}

// ResolveEndpoint picks the audit endpoint for this session. Pure given the
// loaded config: an explicit endpoint wins, otherwise the environment selects
// the local or production address.
func (c *Config) ResolveEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.Environment == EnvLocal {
		return c.LocalURL
	}
	return c.ProductionURL
}
