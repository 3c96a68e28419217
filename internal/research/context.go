// Package research gathers a company's web pages and turns them into a
// role-specific briefing.
package research

import (
	"fmt"
	"strings"

	"github.com/jonathan/client-research/internal/fetch"
	"github.com/jonathan/client-research/internal/people"
	"github.com/jonathan/client-research/internal/prompts"
	"github.com/jonathan/client-research/internal/roles"
)

// MaxContextChars bounds the assembled context embedded in a prompt, in runes.
const MaxContextChars = 1200000

// noURL is shown in a section header when the related page was not discovered.
const noURL = "none"

// Context is everything gathered for one company.
type Context struct {
	Home     fetch.Page
	About    fetch.Page
	Services fetch.Page
	People   people.Set
}

// Text renders the assembled context block.
func (c *Context) Text() string {
	return Assemble(c.Home, c.About, c.Services, c.People)
}

// Pages returns the three gathered pages in assembly order.
func (c *Context) Pages() []fetch.Page {
	return []fetch.Page{c.Home, c.About, c.Services}
}

// Assemble lays out the gathered pages and team records in fixed order.
// Every section header is present even when its page is missing.
func Assemble(home, about, services fetch.Page, team people.Set) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nTitle: %s\n\n", home.Title)
	fmt.Fprintf(&b, "--- Home Page ---\n%s\n\n", home.BodyText)
	fmt.Fprintf(&b, "--- About Page (%s) ---\n%s\n\n", urlOrNone(about), about.BodyText)
	fmt.Fprintf(&b, "--- Services Page (%s) ---\n%s\n\n", urlOrNone(services), services.BodyText)
	fmt.Fprintf(&b, "--- Team Info ---\n%s\n", team.Render())
	return b.String()
}

func urlOrNone(p fetch.Page) string {
	if p.URL == "" {
		return noURL
	}
	return p.URL
}

// Truncate clips s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// BuildPrompt wraps the truncated context and the role's instructions in the
// analysis template.
func BuildPrompt(contextText string, role roles.Key) string {
	template := prompts.MustGet("report.json", "analyze-company")
	return prompts.Format(template, map[string]string{
		"Context":      Truncate(contextText, MaxContextChars),
		"Instructions": roles.Instructions(role),
	})
}
