// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/client-research/internal/fetch"
	"github.com/jonathan/client-research/internal/people"
	"github.com/jonathan/client-research/internal/report"
	"github.com/jonathan/client-research/internal/research"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewChars bounds the body text preview per page
	previewChars = 120
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to width runes, marking the cut with "...".
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// PrintGathered outputs a summary of the three gathered pages.
func (p *Printer) PrintGathered(rc *research.Context) {
	if rc == nil {
		return
	}

	var sb strings.Builder
	writePage(&sb, "Home", rc.Home)
	sb.WriteString("\n")
	writePage(&sb, "About", rc.About)
	sb.WriteString("\n")
	writePage(&sb, "Services", rc.Services)

	p.printBox("GATHERED PAGES", sb.String())
}

func writePage(sb *strings.Builder, label string, page fetch.Page) {
	switch {
	case page.Empty():
		sb.WriteString(fmt.Sprintf("%s: not found\n", label))
		return
	case page.Failed():
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, page.URL))
		sb.WriteString("  ✗ fetch failed\n")
		return
	}

	sb.WriteString(fmt.Sprintf("%s: %s\n", label, page.URL))
	if page.Title != "" {
		sb.WriteString(fmt.Sprintf("  Title:  %s\n", page.Title))
	}
	sb.WriteString(fmt.Sprintf("  Status: %d, %d chars\n", page.StatusCode, utf8.RuneCountInString(page.BodyText)))
	if page.BodyText != "" {
		preview := page.BodyText
		if utf8.RuneCountInString(preview) > previewChars {
			preview = string([]rune(preview)[:previewChars]) + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", preview))
	}
}

// PrintPeople outputs the mined team records.
func (p *Printer) PrintPeople(set people.Set) {
	if set.Len() == 0 {
		p.printBox("TEAM INFO", people.NoTeamInfo)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d people:\n", set.Len()))
	records := set.Strings()
	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", records[i]))
	}
	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(records)-maxItemsToShow))
	}

	p.printBox("TEAM INFO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the report metadata and where it was saved.
func (p *Printer) PrintReport(r *report.Report, path string) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:      %s\n", r.URL))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", r.Role))
	if r.Model != "" {
		sb.WriteString(fmt.Sprintf("Model:    %s\n", r.Model))
	}
	sb.WriteString(fmt.Sprintf("Report:   %s\n", r.ID))
	if path != "" {
		sb.WriteString(fmt.Sprintf("Saved to: %s\n", path))
	}

	p.printBox("RESEARCH REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
