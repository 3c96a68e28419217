package crawling

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/client-research/internal/fetch"
	"github.com/jonathan/client-research/internal/parsing"
)

// Well-known keywords for related company pages.
const (
	KeywordAbout    = "about"
	KeywordServices = "services"
)

// Status describes the outcome of a discovery attempt.
type Status string

const (
	// StatusFound means an anchor matched the keyword
	StatusFound Status = "found"
	// StatusNotFound means the page was read but no anchor matched
	StatusNotFound Status = "not_found"
	// StatusFetchFailed means the base page could not be retrieved
	StatusFetchFailed Status = "fetch_failed"
	// StatusMalformed means the base URL or markup could not be used
	StatusMalformed Status = "malformed"
)

// Discovery is the result of looking for a related page.
// Callers that only care about "URL or none" use Found and URL; the Status and Err
// fields keep the reason available for logging.
type Discovery struct {
	Keyword string
	URL     string
	Status  Status
	Err     error
}

// Found reports whether a related page URL was discovered.
func (d Discovery) Found() bool {
	return d.Status == StatusFound
}

// PageFetcher retrieves raw HTML for a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, urlStr string) (*fetch.Result, error)
}

// Discoverer finds related pages by fetching a base page and scanning its anchors.
type Discoverer struct {
	fetcher PageFetcher
}

// NewDiscoverer creates a Discoverer that fetches base pages with f.
func NewDiscoverer(f PageFetcher) *Discoverer {
	return &Discoverer{fetcher: f}
}

// FindRelated fetches baseURL and returns the first anchor matching keyword.
func (d *Discoverer) FindRelated(ctx context.Context, baseURL, keyword string) Discovery {
	result, err := d.fetcher.Fetch(ctx, baseURL)
	if err != nil {
		return Discovery{Keyword: keyword, Status: StatusFetchFailed, Err: err}
	}
	return Match(result.HTML, baseURL, keyword)
}

// Match scans anchors with an href in document order and returns the first whose
// lower-cased text or lower-cased href contains the lower-cased keyword.
// Selection is first-match: an earlier navigation link beats a later, better one.
func Match(htmlContent, baseURL, keyword string) Discovery {
	base, err := url.Parse(baseURL)
	if err != nil {
		return malformed(keyword, "failed to parse base URL", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return malformed(keyword, fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL), nil)
	}

	doc, err := parsing.ParseHTML(htmlContent)
	if err != nil {
		return malformed(keyword, "failed to parse HTML", err)
	}

	needle := strings.ToLower(keyword)
	found := Discovery{Keyword: keyword, Status: StatusNotFound}

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)

		text := strings.ToLower(s.Text())
		if !strings.Contains(text, needle) && !strings.Contains(strings.ToLower(href), needle) {
			return true
		}

		// Skip hrefs that cannot be resolved and keep scanning
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}

		found.URL = base.ResolveReference(ref).String()
		found.Status = StatusFound
		return false
	})

	return found
}

func malformed(keyword, message string, cause error) Discovery {
	return Discovery{
		Keyword: keyword,
		Status:  StatusMalformed,
		Err:     &LinkExtractionError{Message: message, Cause: cause},
	}
}
