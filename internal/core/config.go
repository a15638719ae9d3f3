package core

import (
	"fmt"
	"os"

	"github.com/jo-hoe/pngreduce/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// CommandConfig represents a generic command configuration
type CommandConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:",inline"`
}

type Database struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
}

type Cache struct {
	Address    string `yaml:"address"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

type ServiceConfig struct {
	Port     int             `yaml:"port"`
	Filter   string          `yaml:"filter"`
	Factor   int             `yaml:"factor"`
	Database Database        `yaml:"database"`
	Cache    Cache           `yaml:"cache"`
	Commands []CommandConfig `yaml:"commands"`
}

const (
	defaultPort            = 8080
	defaultFactor          = 2
	defaultCacheTTLSeconds = 3600
)

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return &config, nil
}

// DefaultConfig returns a configuration with all defaults applied and
// neither database nor cache configured.
func DefaultConfig() *ServiceConfig {
	config := &ServiceConfig{}
	applyDefaults(config)
	return config
}

func applyDefaults(config *ServiceConfig) {
	if config.Port == 0 {
		config.Port = defaultPort
	}
	if config.Filter == "" {
		config.Filter = pipeline.DefaultFilter
	}
	if config.Factor == 0 {
		config.Factor = defaultFactor
	}
	if config.Cache.TTLSeconds == 0 {
		config.Cache.TTLSeconds = defaultCacheTTLSeconds
	}
}

func validateConfig(config *ServiceConfig) error {
	if config.Factor < 2 {
		return fmt.Errorf("factor must be at least 2, got %d", config.Factor)
	}
	if _, err := pipeline.ScalerByName(config.Filter); err != nil {
		return err
	}
	return validateCommands(config.Commands)
}

// validateCommands ensures all command configurations have required fields
func validateCommands(commands []CommandConfig) error {
	seenNames := make(map[string]bool)

	for i, cmd := range commands {
		if cmd.Name == "" {
			return fmt.Errorf("command at index %d has empty name", i)
		}
		if seenNames[cmd.Name] {
			return fmt.Errorf("duplicate command name: %s", cmd.Name)
		}
		seenNames[cmd.Name] = true
	}

	return nil
}
