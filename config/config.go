package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Defaults match the reference deployment: the CentOS Stream RPMs group on
// the public GitLab instance.
const (
	DefaultProvider       = "gitlab"
	DefaultGroup          = "redhat/centos-stream/rpms"
	DefaultBaseURL        = "https://gitlab.com"
	DefaultOutput         = "testing_farm_analysis.json"
	DefaultRequestDelayMS = 100
)

// Config is the top-level configuration for the analyzer.
type Config struct {
	Provider       string   `yaml:"provider"`         // Hosting provider type; only "gitlab" ships
	Group          string   `yaml:"group"`            // Slash-separated group path to scan
	BaseURL        string   `yaml:"base_url"`         // API base URL (self-hosted instances)
	Token          string   `yaml:"token"`            // Inline, ${ENV_VAR}, or file path; empty = anonymous
	Output         string   `yaml:"output"`           // Path of the JSON report artifact
	RequestDelayMS int      `yaml:"request_delay_ms"` // Pause between successive API requests
	RequiredTools  []string `yaml:"required_tools"`   // External commands that must be on PATH
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Provider:       DefaultProvider,
		Group:          DefaultGroup,
		BaseURL:        DefaultBaseURL,
		Output:         DefaultOutput,
		RequestDelayMS: DefaultRequestDelayMS,
	}
}

// Load reads and parses a configuration file, expanding environment
// variables in the token and filling unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Token = ResolveToken(cfg.Token)
	applyDefaults(&cfg)

	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".testing-farm-analyzer.yaml",
		".testing-farm-analyzer.yml",
		"testing-farm-analyzer.yaml",
		"testing-farm-analyzer.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// Validate checks for required configuration values.
func Validate(cfg *Config) error {
	if cfg.Provider == "" {
		return errors.New("provider is required")
	}
	if cfg.Group == "" {
		return errors.New("group is required")
	}
	if cfg.Output == "" {
		return errors.New("output path is required")
	}
	if cfg.RequestDelayMS < 0 {
		return fmt.Errorf("request_delay_ms must not be negative, got %d", cfg.RequestDelayMS)
	}
	return nil
}

// RequestDelay returns the configured inter-request pause as a duration.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

func applyDefaults(cfg *Config) {
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.Group == "" {
		cfg.Group = DefaultGroup
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.RequestDelayMS == 0 {
		cfg.RequestDelayMS = DefaultRequestDelayMS
	}
}
