// Package sandbox implements the library's manual-test bot.
//
// The sandbox registers a handful of slash commands that together exercise
// every exported surface of the library against a real bot token: replies,
// defers, followups, autocomplete, modals, components, DMs, permission
// checks and the error-reporting path. It is not part of the library API.
//
// # Configuration
//
// Configuration is loaded from a YAML file with ${VAR} environment variable
// expansion:
//
//	bot:
//	  token: ${SPARKLE_SANDBOX_TOKEN}
//	commands:
//	  guild_id: ""          # empty registers global commands
//	logging:
//	  level: debug
//	  file: logs/sandbox.log
//	  channel_id: ""        # optional Discord channel for error logs
package sandbox

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/laralove143/sparkle-convenience/logger"
	"github.com/laralove143/sparkle-convenience/pkg/constants"
)

const (
	DefaultLogLevel = "info"
	DefaultLogFile  = "logs/sandbox.log"
)

// Config is the sandbox bot configuration.
type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Commands CommandsConfig `yaml:"commands"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BotConfig holds the bot credentials.
type BotConfig struct {
	Token string `yaml:"token"`
}

// CommandsConfig controls where slash commands are registered.
type CommandsConfig struct {
	// GuildID registers commands to one guild for instant availability;
	// empty registers global commands
	GuildID string `yaml:"guild_id"`
}

// LoggingConfig configures the logger package and the optional Discord log
// channel.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   *bool  `yaml:"compress"`
	Stdout     *bool  `yaml:"stdout"`
	ChannelID  string `yaml:"channel_id"`
}

// LoggerConfig converts the logging section into the logger package's config.
func (c *LoggingConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        c.Level,
		File:         c.File,
		MaxSize:      c.MaxSize,
		MaxBackups:   c.MaxBackups,
		MaxAge:       c.MaxAge,
		Compress:     c.Compress == nil || *c.Compress,
		EnableStdout: c.Stdout == nil || *c.Stdout,
	}
}

// LoadConfig loads configuration from file and expands environment variables
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData, err := expandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

// validateConfig fills defaults and checks required fields
func validateConfig(config *Config) error {
	if config.Bot.Token == "" {
		return fmt.Errorf("bot.token is required")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.File == "" {
		config.Logging.File = DefaultLogFile
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = constants.DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = constants.DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = constants.DefaultLogMaxAge
	}

	return nil
}
