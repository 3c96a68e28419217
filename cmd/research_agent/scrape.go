package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/client-research/internal/observability"
	"github.com/jonathan/client-research/internal/research"
	"github.com/jonathan/client-research/internal/roles"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Gather and print the company context without calling the summarizer",
	Long: `Runs the fetch, discovery and team-mining steps and prints the assembled context.
With --prompt, prints the full summarizer prompt for --role instead.`,
	RunE: runScrape,
}

func init() {
	addInputFlags(scrapeCmd)
	scrapeCmd.Flags().StringP("role", "r", "", "Role used with --prompt")
	scrapeCmd.Flags().Bool("prompt", false, "Print the summarizer prompt instead of the raw context")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	showPrompt, _ := cmd.Flags().GetBool("prompt")

	seed, err := resolveSeed(ctx, cfg)
	if err != nil {
		return err
	}

	pipeline := research.NewPipeline(newFetcher(cfg), nil, research.WithLogger(logger))
	rc, err := pipeline.Gather(ctx, seed)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if cfg.Verbose {
		printer := observability.NewPrinter(out)
		printer.PrintGathered(rc)
		printer.PrintPeople(rc.People)
	}

	text := rc.Text()
	if showPrompt {
		text = research.BuildPrompt(text, roles.Parse(cfg.Role))
	}
	_, _ = fmt.Fprintln(out, text)
	return nil
}
