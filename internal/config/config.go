package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// MaxSolveSeconds bounds the wall-clock time spent searching for a
	// schedule before the best-so-far (or a timeout) is returned.
	MaxSolveSeconds int    `yaml:"maxSolveSeconds" validate:"min=1"`
	Solver          string `yaml:"solver" validate:"oneof=gophersat"`
	LogLevel        string `yaml:"logLevel" validate:"oneof=debug info warn error"`
}

func (c *Config) MaxSolveTime() time.Duration {
	return time.Duration(c.MaxSolveSeconds) * time.Second
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		MaxSolveSeconds: 60,
		Solver:          "gophersat",
		LogLevel:        "info",
	}
}

// Load loads and validates the configuration from careschedule.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory, and falls back to defaults when neither exists.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return Default(), nil
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for careschedule.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "careschedule.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
