package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/client-research/internal/observability"
	"github.com/jonathan/client-research/internal/report"
	"github.com/jonathan/client-research/internal/research"
	"github.com/jonathan/client-research/internal/roles"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research a company website and write a role-tailored briefing",
	Long: `Fetches the company home page, its about and services pages, mines team members,
and asks the summarizer for a briefing tailored to --role. The report is saved to --output-dir.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	Example: `  research_agent research --url https://acme.example --role "Business Development"
  research_agent research --company "Acme Inc" --role strategist --format json -o reports/`,
	RunE: runResearch,
}

func init() {
	addInputFlags(researchCmd)
	researchCmd.Flags().StringP("role", "r", "", "Your role: Strategist, Business Development, Client Success Manager")
	researchCmd.Flags().String("provider", "", "Summarizer provider: openai or gemini (default: openai)")
	researchCmd.Flags().String("model", "", "Model override for the summarizer")
	researchCmd.Flags().String("base-url", "", "OpenAI-compatible API base URL")
	researchCmd.Flags().String("api-key", "", "Summarizer API key (defaults to OPENAI_API_KEY or GEMINI_API_KEY)")
	researchCmd.Flags().StringP("format", "f", "", "Report format: markdown or json (default: markdown)")
	researchCmd.Flags().StringP("output-dir", "o", "", "Directory to write the report into (default: current directory)")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Role == "" {
		return fmt.Errorf("role required: set --role or \"role\" in the config file")
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	seed, err := resolveSeed(ctx, cfg)
	if err != nil {
		return err
	}

	summarizer, err := newSummarizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = summarizer.Close() }()

	role := roles.Parse(cfg.Role)
	if !role.Known() {
		logger.Warn("unknown role, using generic instructions", zap.String("role", cfg.Role))
	}

	pipeline := research.NewPipeline(newFetcher(cfg), summarizer, research.WithLogger(logger))
	result, err := pipeline.Run(ctx, seed, role)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintGathered(result.Context)
		printer.PrintPeople(result.Context.People)
	}

	rep := report.New(seed, result)
	path, err := report.Save(cfg.OutputDir, rep, format)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	logger.Info("report saved",
		zap.String("path", path),
		zap.String("report_id", rep.ID.String()),
		zap.Duration("duration", result.Duration),
	)
	printer.PrintReport(rep, path)
	return nil
}
