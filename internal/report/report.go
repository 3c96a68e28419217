// Package report packages a research briefing as a downloadable artifact.
package report

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/client-research/internal/fetch"
	"github.com/jonathan/client-research/internal/people"
	"github.com/jonathan/client-research/internal/research"
)

// Format selects the artifact encoding.
type Format string

const (
	// FormatMarkdown renders a Markdown document
	FormatMarkdown Format = "markdown"
	// FormatJSON renders a schema-validated JSON document
	FormatJSON Format = "json"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", &Error{Message: fmt.Sprintf("unsupported format %q", s)}
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".md"
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/markdown; charset=utf-8"
}

// Error represents a failure to build or write a report.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("report error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("report error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// PageSummary describes one gathered page in the artifact.
type PageSummary struct {
	Label      string `json:"label"`
	URL        string `json:"url,omitempty"`
	Title      string `json:"title,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Report is the downloadable research artifact.
type Report struct {
	ID          uuid.UUID       `json:"id"`
	URL         string          `json:"url"`
	Role        string          `json:"role"`
	RoleKey     string          `json:"role_key,omitempty"`
	Model       string          `json:"model,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Body        string          `json:"summary"`
	Pages       []PageSummary   `json:"pages"`
	People      []people.Record `json:"people"`
}

// New builds a report for a completed research run.
func New(seedURL string, result *research.Result) *Report {
	r := &Report{
		ID:          uuid.New(),
		URL:         seedURL,
		Role:        result.Role.DisplayName(),
		RoleKey:     string(result.Role),
		Model:       result.Model,
		GeneratedAt: time.Now().UTC(),
		Body:        result.Summary,
		Pages:       []PageSummary{},
		People:      []people.Record{},
	}
	if rc := result.Context; rc != nil {
		r.Pages = summarizePages(rc)
		r.People = rc.People.Records()
	}
	return r
}

func summarizePages(rc *research.Context) []PageSummary {
	labels := []string{"home", "about", "services"}
	out := make([]PageSummary, 0, len(labels))
	for i, page := range rc.Pages() {
		out = append(out, summarizePage(labels[i], page))
	}
	return out
}

func summarizePage(label string, page fetch.Page) PageSummary {
	s := PageSummary{
		Label:      label,
		URL:        page.URL,
		Title:      page.Title,
		StatusCode: page.StatusCode,
	}
	if page.Err != nil {
		s.Error = page.Err.Error()
	}
	return s
}

// Write encodes r to w in the given format.
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatMarkdown, "":
		return WriteMarkdown(w, r)
	default:
		return &Error{Message: fmt.Sprintf("unsupported format %q", format)}
	}
}

// Filename returns a stable file name for r, e.g.
// "client-research-acme.test-20261015-093000.md".
func (r *Report) Filename(format Format) string {
	host := "report"
	if u, err := url.Parse(r.URL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	return fmt.Sprintf("client-research-%s-%s%s", host, r.GeneratedAt.UTC().Format("20060102-150405"), format.Extension())
}

// Save writes r into dir and returns the file path.
func Save(dir string, r *Report, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{Message: "failed to create output directory", Cause: err}
	}

	path := filepath.Join(dir, r.Filename(format))
	f, err := os.Create(path)
	if err != nil {
		return "", &Error{Message: "failed to create report file", Cause: err}
	}

	if err := Write(f, r, format); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", &Error{Message: "failed to close report file", Cause: err}
	}
	return path, nil
}
