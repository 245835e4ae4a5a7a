/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the bvhctl service configuration.
type Config struct {
	Bind            string `yaml:"bind"`
	Port            int    `yaml:"port"`
	InitialCapacity int    `yaml:"initial_capacity"`
	APIKey          string `yaml:"api_key"`
	Logging         Logging `yaml:"logging"`
	InstanceID      string `yaml:"instance_id"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration: loopback bind, an empty
// API key (auth disabled), and a node pool that starts small and grows on
// demand.
func DefaultConfig() *Config {
	return &Config{
		Bind:            "127.0.0.1",
		Port:            8080,
		InitialCapacity: 1024,
		APIKey:          "",
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure
// permissions (the file may carry an API key).
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateInstanceID returns a random 16-character hex identifier (8
// random bytes). bvhctl serve reports it in the GET /stats response; it is
// not attached to log lines or Prometheus metrics.
func GenerateInstanceID() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate instance id: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a default configuration with a freshly generated
// instance ID and writes it to configPath, replacing any file already
// there.
func BootstrapConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	instanceID, err := GenerateInstanceID()
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap config: %w", err)
	}
	config.InstanceID = instanceID

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./bvhctl.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "bvhctl")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
