// Package config loads optional start-up defaults from a .noh.yaml file in
// the working directory. CLI flags override anything set here.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".noh.yaml"

// Config carries interpreter start-up defaults.
type Config struct {
	// Prompt is the initial REPL prompt.
	Prompt string `yaml:"prompt"`
	// Debug enables verbose diagnostics.
	Debug bool `yaml:"debug"`
	// Fast suppresses info-class diagnostics.
	Fast bool `yaml:"fast"`
	// LogFile overrides the diagnostic log path.
	LogFile string `yaml:"log_file"`
}

// Load reads a config file. A missing file yields the zero config without an
// error; a malformed file is an error.
func Load(path string) (Config, error) {
	var cfg Config
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
