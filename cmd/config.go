package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"proberegistry/domain"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envConfigPath    = "APP_CONFIG"
	envHost          = "APP_HOST"
	envPort          = "APP_PORT"
	envGroup         = "APP_GROUP"
	envKeepalive     = "APP_KEEPALIVE"
	envSweepInterval = "APP_SWEEP_INTERVAL"
	envVerbose       = "APP_VERBOSE"
	envRedisAddr     = "REDIS_ADDR"
)

// Defaults applied when neither the environment nor the config file sets a value.
const (
	defaultHost             = "127.0.0.1"
	defaultPort             = 5000
	defaultGroup            = "none"
	defaultKeepaliveSeconds = 86400
	defaultSweepInterval    = 60 * time.Second
)

// defaultConfigFiles are tried in order when APP_CONFIG is not set; "~" is the user home directory.
var defaultConfigFiles = []string{".config.yml", "~/.config.yml"}

// Config holds the registry configuration loaded by LoadConfig.
type Config struct {
	Host             string
	Port             int
	Group            string // default group of probes that do not send one
	KeepaliveSeconds int    // default keepalive of probes that do not send one
	SweepInterval    time.Duration
	Verbose          bool
	RedisAddr        string // empty disables the Redis mirror
	ConfigFile       string // file the values were read from, empty when none was found
}

// ListenAddr is the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// yamlConfig is the root struct for YAML unmarshalling. Pointers tell an absent key from a zero value.
type yamlConfig struct {
	Host          *string `yaml:"host"`
	Port          *int    `yaml:"port"`
	Group         *string `yaml:"group"`
	Keepalive     *int    `yaml:"keepalive"`
	SweepInterval *int    `yaml:"sweep_interval"` // seconds
	Verbose       *bool   `yaml:"verbose"`
	RedisAddr     *string `yaml:"redis_addr"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the configuration from defaults, then the YAML file, then environment variables;
// later sources win. The file is APP_CONFIG when set (it must exist), otherwise the first existing
// entry of defaultConfigFiles.
//
// Returns: (*Config, nil) on success; (nil, error) on unreadable or malformed file, unparsable
// environment value, or out-of-range port, keepalive or sweep interval.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Host:             defaultHost,
		Port:             defaultPort,
		Group:            defaultGroup,
		KeepaliveSeconds: defaultKeepaliveSeconds,
		SweepInterval:    defaultSweepInterval,
	}

	path, err := configFilePath()
	if err != nil {
		return nil, err
	}
	if path != "" {
		raw, err := loadYAMLConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		raw.apply(cfg)
		cfg.ConfigFile = path
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFilePath() (string, error) {
	if path := strings.TrimSpace(os.Getenv(envConfigPath)); path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("%s: %w", envConfigPath, err)
		}
		return abs, nil
	}

	for _, candidate := range defaultConfigFiles {
		path, err := expandHome(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		return filepath.Abs(path)
	}
	return "", nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}

func (y *yamlConfig) apply(cfg *Config) {
	if y.Host != nil {
		cfg.Host = strings.TrimSpace(*y.Host)
	}
	if y.Port != nil {
		cfg.Port = *y.Port
	}
	if y.Group != nil {
		cfg.Group = strings.TrimSpace(*y.Group)
	}
	if y.Keepalive != nil {
		cfg.KeepaliveSeconds = *y.Keepalive
	}
	if y.SweepInterval != nil {
		cfg.SweepInterval = time.Duration(*y.SweepInterval) * time.Second
	}
	if y.Verbose != nil {
		cfg.Verbose = *y.Verbose
	}
	if y.RedisAddr != nil {
		cfg.RedisAddr = strings.TrimSpace(*y.RedisAddr)
	}
}

// applyEnv overrides cfg with every non-empty environment variable.
func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(envHost)); v != "" {
		cfg.Host = v
	}
	if v := strings.TrimSpace(os.Getenv(envGroup)); v != "" {
		cfg.Group = v
	}
	if v := strings.TrimSpace(os.Getenv(envRedisAddr)); v != "" {
		cfg.RedisAddr = v
	}

	ints := []struct {
		name string
		set  func(int)
	}{
		{envPort, func(n int) { cfg.Port = n }},
		{envKeepalive, func(n int) { cfg.KeepaliveSeconds = n }},
		{envSweepInterval, func(n int) { cfg.SweepInterval = time.Duration(n) * time.Second }},
	}
	for _, item := range ints {
		v := strings.TrimSpace(os.Getenv(item.name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", item.name, err)
		}
		item.set(n)
	}

	if v := strings.TrimSpace(os.Getenv(envVerbose)); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envVerbose, err)
		}
		cfg.Verbose = verbose
	}
	return nil
}

func (c *Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", c.Port)
	}
	if c.KeepaliveSeconds < 0 {
		return fmt.Errorf("keepalive must not be negative, got %d", c.KeepaliveSeconds)
	}
	if c.KeepaliveSeconds > domain.MaxKeepaliveSeconds {
		return fmt.Errorf("keepalive must not exceed %d, got %d", domain.MaxKeepaliveSeconds, c.KeepaliveSeconds)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive, got %s", c.SweepInterval)
	}
	return nil
}
