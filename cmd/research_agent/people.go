package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/client-research/internal/people"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Extract team member names and titles from a page",
	Long:  "Mines name/title pairs from an about page, fetched from --url or read from a saved HTML --file.",
	RunE:  runPeople,
}

var (
	peopleURL  string
	peopleFile string
	peopleJSON bool
)

func init() {
	peopleCmd.Flags().StringVarP(&peopleURL, "url", "u", "", "About page URL")
	peopleCmd.Flags().StringVar(&peopleFile, "file", "", "Path to a saved HTML file")
	peopleCmd.Flags().BoolVar(&peopleJSON, "json", false, "Print records as JSON")
	peopleCmd.MarkFlagsOneRequired("url", "file")
	peopleCmd.MarkFlagsMutuallyExclusive("url", "file")

	rootCmd.AddCommand(peopleCmd)
}

func runPeople(cmd *cobra.Command, _ []string) error {
	var html string
	if peopleFile != "" {
		content, err := os.ReadFile(peopleFile)
		if err != nil {
			return fmt.Errorf("failed to read HTML file: %w", err)
		}
		html = string(content)
	} else {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		page := newFetcher(cfg).Scrape(cmd.Context(), peopleURL)
		if page.Failed() {
			return fmt.Errorf("failed to fetch %s: %w", peopleURL, page.Err)
		}
		html = page.RawHTML
	}

	team := people.NewMiner().Extract(html)

	out := cmd.OutOrStdout()
	if peopleJSON {
		data, err := json.MarshalIndent(team.Records(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}
	_, _ = fmt.Fprintln(out, team.Render())
	return nil
}
