package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/client-research/internal/parsing"
)

// NarrativeSelector lists the tags treated as narrative content.
// Everything else (navigation, divs, spans, footers) only contributes through these.
const NarrativeSelector = "p, h1, h2, li"

// ExtractNarrative parses HTML and returns the page title and the narrative body text.
// The body is each narrative element's visible text, joined with single spaces in
// document order.
func ExtractNarrative(rawHTML string) (title string, body string, err error) {
	doc, err := parsing.ParseHTML(rawHTML)
	if err != nil {
		return "", "", err
	}
	return Title(doc), NarrativeText(doc), nil
}

// Title returns the text of the first <title> element, or "" if there is none.
func Title(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// NarrativeText joins the visible text of every narrative element.
func NarrativeText(doc *goquery.Document) string {
	var parts []string
	doc.Find(NarrativeSelector).Each(func(_ int, s *goquery.Selection) {
		if text := parsing.VisibleText(s); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}
