package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up from the working directory upward.
const FileName = ".rpyfmt.yaml"

type Config struct {
	LineLength       int      `yaml:"line-length"`
	InlineLineLength int      `yaml:"inline-line-length"`
	Engine           string   `yaml:"engine"`
	EngineArgs       []string `yaml:"engine-args"`
	Timeout          int      `yaml:"timeout"` // seconds per region
	Jobs             int      `yaml:"jobs"`
	TabPolicy        string   `yaml:"tab-policy"`
	TabWidth         int      `yaml:"tab-width"`
	Strict           bool     `yaml:"strict"`
	Exclude          []string `yaml:"exclude"`
}

// Load reads a YAML config file and returns a validated Config. The path
// must exist; callers that tolerate a missing config use Find first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Find walks up from dir looking for the config file. Returns the empty
// string when no config exists anywhere up to the filesystem root.
func Find(dir string) string {
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
