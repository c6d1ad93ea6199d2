package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the API server configuration, loadable from a YAML file.
type Config struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
	Debug        bool     `yaml:"debug"`
}

// DefaultConfig mirrors the development defaults of the original deployment:
// port 8000, browser dev servers allowed.
func DefaultConfig() Config {
	return Config{
		Addr: ":8000",
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	return cfg, nil
}
