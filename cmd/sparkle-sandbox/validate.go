package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/laralove143/sparkle-convenience/internal/sandbox"
)

var (
	validateConfigPath string
	validateShow       bool
	validateJSON       bool
)

// ValidationResult represents the validation result
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Config   string   `json:"config"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the sandbox configuration file",
	Long: `Validate the sandbox configuration file without connecting to Discord.

This command checks:
  - YAML syntax
  - Environment variable expansion
  - Required fields

Exit codes:
  0 - Configuration is valid
  1 - Configuration has errors`,
	Run: func(cmd *cobra.Command, args []string) {
		configFile := validateConfigPath
		if configFile == "" {
			for _, loc := range []string{
				"config.yaml",
				filepath.Join(os.Getenv("HOME"), ".config/sparkle-sandbox/config.yaml"),
			} {
				if _, err := os.Stat(loc); err == nil {
					configFile = loc
					break
				}
			}
		}

		if configFile == "" {
			fmt.Println("❌ No configuration file found")
			fmt.Println("\nSpecify a config file with --config or ensure one exists at:")
			fmt.Println("  - ./config.yaml")
			fmt.Println("  - ~/.config/sparkle-sandbox/config.yaml")
			os.Exit(1)
		}

		config, err := sandbox.LoadConfig(configFile)
		if err != nil {
			outputValidationResult(ValidationResult{
				Valid:  false,
				Config: configFile,
				Errors: []string{err.Error()},
			}, validateJSON)
			os.Exit(1)
		}

		result := ValidationResult{
			Valid:    true,
			Config:   configFile,
			Warnings: configWarnings(config),
		}

		if validateShow {
			fmt.Printf("✓ Configuration loaded: %s\n\n", configFile)
			fmt.Printf("Commands guild: %s\n", orGlobal(config.Commands.GuildID))
			fmt.Printf("Log level: %s\n", config.Logging.Level)
			fmt.Printf("Log file: %s\n", config.Logging.File)
			fmt.Printf("Log channel: %s\n\n", orUnset(config.Logging.ChannelID))
		}

		outputValidationResult(result, validateJSON)
	},
}

func outputValidationResult(result ValidationResult, jsonFormat bool) {
	if jsonFormat {
		output, err := json.Marshal(result)
		if err != nil {
			fmt.Printf("{\"error\": \"failed to marshal json: %v\"}\n", err)
			return
		}
		fmt.Println(string(output))
		return
	}

	if result.Valid {
		fmt.Println("✓ Configuration is valid")
		fmt.Printf("  - Config: %s\n", result.Config)
		if len(result.Warnings) > 0 {
			fmt.Println("\n⚠️  Warnings:")
			for _, warning := range result.Warnings {
				fmt.Printf("  - %s\n", warning)
			}
		}
	} else {
		fmt.Println("❌ Configuration validation failed:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  - %s\n", errMsg)
		}
	}
}

func configWarnings(config *sandbox.Config) []string {
	var warnings []string

	if config.Commands.GuildID == "" {
		warnings = append(warnings,
			"commands.guild_id is empty - global commands can take up to an hour to appear")
	}
	if config.Logging.ChannelID == "" {
		warnings = append(warnings,
			"logging.channel_id is empty - errors will only go to the log file")
	}

	return warnings
}

func orGlobal(guildID string) string {
	if guildID == "" {
		return "(global)"
	}
	return guildID
}

func orUnset(value string) string {
	if value == "" {
		return "(unset)"
	}
	return value
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigPath, "config", "c", "", "Configuration file path")
	validateCmd.Flags().BoolVar(&validateShow, "show", false, "Show full configuration details")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
}
