package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/carelift/dispatch/core/metrics"
	"github.com/carelift/dispatch/infra/mqtt"
)

// Config is the root service configuration.
type Config struct {
	HTTP     HTTPConfig     `json:"http"`
	MQTT     mqtt.Config    `json:"mqtt"`
	Offers   OffersConfig   `json:"offers"`
	Metrics  metrics.Config `json:"metrics"`
	MatchLog MatchLogConfig `json:"match_log"`
}

// Load reads the configuration file (yaml or json), then applies environment
// overrides with the CARELIFT_ prefix (double underscores map to dots).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("CARELIFT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "carelift_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.HTTP.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Offers.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MatchLog.SetDefaults()
	if err := cfg.MatchLog.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HTTPConfig defines the API server settings.
type HTTPConfig struct {
	// Addr is the listen address of the rides API.
	Addr string `json:"addr"`
	// LogToken guards the matchlog endpoint when non-empty.
	LogToken string `json:"log_token"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// OffersConfig defines ride-offer delivery settings.
type OffersConfig struct {
	// Enabled connects the MQTT offer publisher at startup.
	Enabled bool `json:"enabled"`
	// AckTimeoutSeconds bounds the wait for a driver's answer.
	AckTimeoutSeconds int `json:"ack_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *OffersConfig) SetDefaults() {
	if c.AckTimeoutSeconds == 0 {
		c.AckTimeoutSeconds = 5
	}
}
