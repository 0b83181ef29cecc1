package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"proberegistry/domain"
	"proberegistry/helpers"
)

// Env variable names.
const (
	envRegistryURL = "PROBE_REGISTRY_URL"
	envPort        = "PROBE_PORT"
	envKeepalive   = "PROBE_KEEPALIVE"
	envGroup       = "PROBE_GROUP"
	envVersion     = "PROBE_VERSION"
	envInterval    = "PROBE_INTERVAL"
	envVerbose     = "PROBE_VERBOSE"
)

const (
	defaultRegistryURL = "http://127.0.0.1:5000"
	defaultVersion     = "1.0"
)

// Config describes the probe announced to the registry.
type Config struct {
	RegistryURL string
	Port        int
	Keepalive   *int   // nil lets the registry apply its default
	Group       string // empty lets the registry apply its default
	Version     string
	Interval    time.Duration // zero derives the interval from the keepalive
	Verbose     bool
}

// Registration is the request the heartbeat sends on every tick.
func (c *Config) Registration() domain.Registration {
	return domain.Registration{
		Port:             c.Port,
		Group:            c.Group,
		KeepaliveSeconds: c.Keepalive,
		Meta:             map[string]any{"version": c.Version},
	}
}

// LoadConfig reads the probe configuration from environment variables. PROBE_PORT is required.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		RegistryURL: defaultRegistryURL,
		Version:     defaultVersion,
	}

	if v := strings.TrimSpace(os.Getenv(envRegistryURL)); v != "" {
		cfg.RegistryURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envGroup)); v != "" {
		cfg.Group = v
	}
	if v := strings.TrimSpace(os.Getenv(envVersion)); v != "" {
		cfg.Version = v
	}

	port, err := intEnv(envPort)
	if err != nil {
		return nil, err
	}
	if port == nil {
		return nil, fmt.Errorf("%s is required", envPort)
	}
	cfg.Port = *port

	if cfg.Keepalive, err = intEnv(envKeepalive); err != nil {
		return nil, err
	}

	interval, err := intEnv(envInterval)
	if err != nil {
		return nil, err
	}
	cfg.Interval = time.Duration(helpers.Value(interval, 0)) * time.Second

	if v := strings.TrimSpace(os.Getenv(envVerbose)); v != "" {
		if cfg.Verbose, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envVerbose, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func intEnv(name string) (*int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &n, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.RegistryURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", envRegistryURL, c.RegistryURL)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", c.Port)
	}
	if c.Keepalive != nil && (*c.Keepalive < 0 || *c.Keepalive > domain.MaxKeepaliveSeconds) {
		return fmt.Errorf("keepalive must be 0-%d, got %d", domain.MaxKeepaliveSeconds, *c.Keepalive)
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", c.Interval)
	}
	return nil
}
