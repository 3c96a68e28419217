// Package main provides the client-research CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/client-research/internal/config"
	"github.com/jonathan/client-research/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// fileCfg holds values from --config; flags override them per command.
	fileCfg   config.Config
	logger    = zap.NewNop()
	flushLogs = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "research_agent",
	Short: "Client research briefings from company websites",
	Long: `research_agent fetches a company's home page, discovers its about and services pages,
extracts narrative text and team members, and asks an LLM for a briefing tailored to your role.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { flushLogs() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: info)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json (default: console)")
}

// setup loads the config file and installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileCfg = *loaded
	}

	overrides := config.Config{}
	if cmd.Flags().Changed("log-level") {
		overrides.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		overrides.LogFormat = logFormat
	}
	merged := overrides.MergeWithDefaults(fileCfg)

	cleanup, err := logging.Init(merged.LogLevel, merged.LogFormat)
	if err != nil {
		return err
	}
	logger = zap.L()
	flushLogs = cleanup
	if configPath != "" {
		logger.Debug("loaded config", zap.String("path", configPath))
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
