// Package parsing provides tolerant HTML parsing and visible-text helpers shared by
// the extraction, discovery and entity-mining stages.
package parsing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// invisibleElements hold text that a reader never sees.
var invisibleElements = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
}

// ParseHTML parses raw markup into a goquery document.
// The underlying parser repairs malformed markup instead of rejecting it.
func ParseHTML(raw string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, &ParseError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}
	return doc, nil
}

// TextFragments returns every non-empty text node under the selection, each
// stripped of surrounding whitespace, in document order.
func TextFragments(sel *goquery.Selection) []string {
	var fragments []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				fragments = append(fragments, text)
			}
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			if invisibleElements[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}
	return fragments
}

// VisibleText joins the stripped text fragments under the selection with single spaces.
func VisibleText(sel *goquery.Selection) string {
	return strings.Join(TextFragments(sel), " ")
}
