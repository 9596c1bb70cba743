package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/laralove143/sparkle-convenience/internal/sandbox"
	"github.com/laralove143/sparkle-convenience/logger"
)

var (
	configFile string

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the sandbox bot",
		Long:  "Connect to Discord, register the sandbox commands and serve interactions until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			config, err := sandbox.LoadConfig(configFile)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}

			if err := logger.InitLogger(config.Logging.LoggerConfig()); err != nil {
				log.Fatalf("Failed to initialize logger: %v", err)
			}

			logger.WithFields(logrus.Fields{
				"config_file": configFile,
				"log_level":   config.Logging.Level,
				"log_file":    config.Logging.File,
			}).Info("logger-initialized")

			bot, err := sandbox.New(config)
			if err != nil {
				log.Fatalf("Failed to create bot: %v", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := bot.Run(ctx); err != nil {
				log.Fatalf("Bot exited with error: %v", err)
			}
		},
	}
)

func init() {
	runCmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Configuration file path")
}
