package config

import (
	"fmt"
	"runtime"
)

var validTabPolicies = map[string]bool{
	"":       true,
	"reject": true,
	"expand": true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.LineLength < 0 {
		return fmt.Errorf("config: line-length must be >= 0")
	}
	if cfg.LineLength == 0 {
		cfg.LineLength = 88
	}
	if cfg.InlineLineLength < 0 {
		return fmt.Errorf("config: inline-line-length must be >= 0")
	}
	if cfg.InlineLineLength == 0 {
		cfg.InlineLineLength = 1000
	}
	if cfg.Engine == "" {
		cfg.Engine = "black"
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("config: timeout must be >= 0")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60
	}
	if cfg.Jobs < 0 {
		return fmt.Errorf("config: jobs must be >= 0")
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.NumCPU()
	}
	if !validTabPolicies[cfg.TabPolicy] {
		return fmt.Errorf("config: unknown tab-policy %q (must be reject or expand)", cfg.TabPolicy)
	}
	if cfg.TabPolicy == "" {
		cfg.TabPolicy = "reject"
	}
	if cfg.TabWidth < 0 {
		return fmt.Errorf("config: tab-width must be >= 0")
	}
	if cfg.TabWidth == 0 {
		cfg.TabWidth = 8
	}
	for _, g := range cfg.Exclude {
		if g == "" {
			return fmt.Errorf("config: exclude entries must be non-empty")
		}
	}
	return nil
}
