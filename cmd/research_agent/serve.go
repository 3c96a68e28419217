package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/client-research/internal/research"
	"github.com/jonathan/client-research/internal/server"
	"github.com/jonathan/client-research/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes report generation over REST:
POST /reports, POST /reports/stream (Server-Sent Events), GET /roles and GET /health.`,
	RunE: runServe,
}

var (
	servePort       int
	serveRunTimeout time.Duration
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().DurationVar(&serveRunTimeout, "run-timeout", server.DefaultRunTimeout, "Maximum duration of one report run")
	serveCmd.Flags().String("provider", "", "Summarizer provider: openai or gemini (default: openai)")
	serveCmd.Flags().String("model", "", "Model override for the summarizer")
	serveCmd.Flags().String("base-url", "", "OpenAI-compatible API base URL")
	serveCmd.Flags().String("api-key", "", "Summarizer API key (defaults to OPENAI_API_KEY or GEMINI_API_KEY)")
	serveCmd.Flags().Int("timeout", 0, "Per-request fetch timeout in seconds")
	serveCmd.Flags().String("user-agent", "", "User-Agent header for page fetches")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	summarizer, err := newSummarizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = summarizer.Close() }()

	srvCfg := server.Config{
		Port:       servePort,
		Runner:     research.NewPipeline(newFetcher(cfg), summarizer, research.WithLogger(logger)),
		Logger:     logger,
		RateLimit:  ratelimit.LoadConfig(),
		RunTimeout: serveRunTimeout,
	}

	finder, err := newWebsiteFinder(ctx)
	if err != nil {
		return err
	}
	if finder != nil {
		srvCfg.Finder = finder
	} else {
		logger.Info("company lookup disabled; requests must include a url")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving reports", zap.Int("port", servePort), zap.Duration("run_timeout", serveRunTimeout))
	return srv.Start()
}
