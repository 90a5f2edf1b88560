package config

import "fmt"

// MatchLogConfig defines settings for match decision storage and rotation.
type MatchLogConfig struct {
	// Enabled turns decision logging on.
	Enabled bool `json:"enabled"`
	// Backend selects the store type: "jsonl" or "rotating".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *MatchLogConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "matchlog.jsonl"
	}
}

// Validate checks mandatory fields.
func (c MatchLogConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "rotating" {
		return fmt.Errorf("unknown match log backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("match log path is required")
	}
	return nil
}
