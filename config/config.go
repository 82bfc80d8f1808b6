// Package config loads host configuration from an optional YAML file
// with environment variable overrides. Loading is best-effort and never
// fails: anything unreadable falls back to defaults.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the host application settings
type Config struct {
	Endpoint      string `yaml:"endpoint"`
	Model         string `yaml:"model"`
	AssetDir      string `yaml:"asset_dir"`
	PrefsFile     string `yaml:"prefs_file"`
	ReducedMotion bool   `yaml:"reduced_motion"`
	LogFile       string `yaml:"log_file"`
}

// Default returns the baseline configuration
func Default() *Config {
	return &Config{
		Endpoint: "http://localhost:11434",
		Model:    "llama3",
		AssetDir: "assets",
		LogFile:  "promptbench.log",
	}
}

// Load reads the config file if present, then applies env overrides.
// A missing or malformed file is not an error; defaults apply.
func Load(path string) *Config {
	cfg := Default()

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			// Best-effort parse; a bad file leaves defaults in place
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	if v := os.Getenv("PROMPTBENCH_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PROMPTBENCH_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PROMPTBENCH_ASSET_DIR"); v != "" {
		cfg.AssetDir = v
	}
	if v := os.Getenv("PROMPTBENCH_PREFS_FILE"); v != "" {
		cfg.PrefsFile = v
	}
	if v := os.Getenv("PROMPTBENCH_REDUCED_MOTION"); v != "" {
		if val, err := strconv.ParseBool(v); err == nil {
			cfg.ReducedMotion = val
		}
	}
	if v := os.Getenv("PROMPTBENCH_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg
}
