package people

import (
	"regexp"
	"strings"
)

// Matcher finds name/title pairs in a block of text.
// Implementations encode a naming convention; the default ones assume
// Western capitalized names.
type Matcher interface {
	Match(text string) []Record
}

// RegexMatcher matches a pattern whose first two capture groups are name and title.
type RegexMatcher struct {
	pattern *regexp.Regexp
	// canonical rewrites a captured title; nil keeps it as captured
	canonical func(string) string
}

// NewRegexMatcher creates a matcher from a pattern with name and title groups.
func NewRegexMatcher(pattern *regexp.Regexp) *RegexMatcher {
	return &RegexMatcher{pattern: pattern}
}

// Match returns one record per non-overlapping match, left to right.
func (m *RegexMatcher) Match(text string) []Record {
	if text == "" {
		return nil
	}
	var records []Record
	for _, groups := range m.pattern.FindAllStringSubmatch(text, -1) {
		if len(groups) < 3 {
			continue
		}
		title := groups[2]
		if m.canonical != nil {
			title = m.canonical(title)
		}
		records = append(records, Record{Name: groups[1], Title: title})
	}
	return records
}

// space matches ASCII whitespace and Unicode space separators such as U+00A0.
const space = `[\s\p{Zs}]`

// namePattern is a run of one to three capitalized words.
const namePattern = `([A-Z][a-z]+(?:` + space + `[A-Z][a-z]+){0,2})`

// capitalizedPairPattern is a name run followed by a title run of two or more
// capitalized words.
var capitalizedPairPattern = regexp.MustCompile(namePattern + space + `+([A-Z][a-z]+(?:` + space + `[A-Z][a-z]+)+)`)

// ExecutiveTitles is the title vocabulary of the sitewide pass.
var ExecutiveTitles = []string{
	"CEO",
	"President",
	"VP",
	"Vice President",
	"CMO",
	"Marketing Director",
	"Sales Director",
}

// NewCapitalizedPairMatcher matches "First Last Title Words" sequences.
func NewCapitalizedPairMatcher() *RegexMatcher {
	return NewRegexMatcher(capitalizedPairPattern)
}

// NewTitleVocabularyMatcher matches a capitalized name immediately followed by one
// of titles, compared case-insensitively. Matched titles are reported in the
// vocabulary's spelling.
func NewTitleVocabularyMatcher(titles []string) *RegexMatcher {
	alternatives := make([]string, 0, len(titles))
	canonical := make(map[string]string, len(titles))
	for _, t := range titles {
		alternatives = append(alternatives, regexp.QuoteMeta(t))
		canonical[strings.ToLower(t)] = t
	}
	pattern := regexp.MustCompile(namePattern + space + `+(?i:(` + strings.Join(alternatives, "|") + `))`)

	return &RegexMatcher{
		pattern: pattern,
		canonical: func(title string) string {
			if c, ok := canonical[strings.ToLower(title)]; ok {
				return c
			}
			return title
		},
	}
}
