package people

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/client-research/internal/parsing"
)

// DefaultSectionClassPattern selects containers that usually list staff.
var DefaultSectionClassPattern = regexp.MustCompile(`(?i)(team|leader|person|staff)`)

// Miner extracts person records from raw HTML in two additive passes:
// a section-scoped pass over team-like containers and a sitewide pass over the
// raw markup.
type Miner struct {
	// SectionClass selects div/section containers by their class attribute
	SectionClass *regexp.Regexp
	// Section is applied to the visible text of each selected container
	Section Matcher
	// Sitewide is applied to the whole raw HTML string
	Sitewide Matcher
}

// NewMiner creates a Miner with the default heuristics.
func NewMiner() *Miner {
	return &Miner{
		SectionClass: DefaultSectionClassPattern,
		Section:      NewCapitalizedPairMatcher(),
		Sitewide:     NewTitleVocabularyMatcher(ExecutiveTitles),
	}
}

// Extract returns the union of both passes. It never fails: unusable input
// yields an empty set.
func (m *Miner) Extract(rawHTML string) Set {
	found := NewSet()
	if rawHTML == "" {
		return found
	}

	if m.Section != nil && m.SectionClass != nil {
		for _, text := range m.sectionTexts(rawHTML) {
			found.Union(NewSet(m.Section.Match(text)...))
		}
	}

	if m.Sitewide != nil {
		found.Union(NewSet(m.Sitewide.Match(rawHTML)...))
	}

	return found
}

// sectionTexts returns the visible text of every div or section whose class
// attribute matches SectionClass.
func (m *Miner) sectionTexts(rawHTML string) []string {
	doc, err := parsing.ParseHTML(rawHTML)
	if err != nil {
		return nil
	}

	var texts []string
	doc.Find("div[class], section[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if !m.SectionClass.MatchString(class) {
			return
		}
		if text := parsing.VisibleText(s); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}
