package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	instagram "github.com/anatolykoptev/go-instagram"
)

const sessionEnv = "OSINTGRAM_SESSIONID"

// fileConfig is the on-disk shape of --config.
type fileConfig struct {
	APIBase           string        `yaml:"api_base"`
	Proxy             string        `yaml:"proxy"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	Pacing            time.Duration `yaml:"pacing"`
	RateLimitCooldown time.Duration `yaml:"rate_limit_cooldown"`
}

// loadConfig reads an optional YAML file into an instagram.Config. An empty
// path yields the zero Config, which the client fills with defaults.
func loadConfig(path string) (instagram.Config, error) {
	var cfg instagram.Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.APIBase = fc.APIBase
	cfg.Proxy = fc.Proxy
	cfg.RequestTimeout = fc.RequestTimeout
	cfg.Pacing = fc.Pacing
	cfg.RateLimitCooldown = fc.RateLimitCooldown
	return cfg, nil
}

// loadDotenv loads .env from the working directory if there is one.
func loadDotenv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
