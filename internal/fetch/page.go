package fetch

import (
	"context"
	"fmt"
)

// Page is a fetched and extracted page. The zero value is the placeholder for a
// related page that was never discovered.
type Page struct {
	URL        string
	Title      string
	BodyText   string
	RawHTML    string
	StatusCode int
	// Err is set when fetching or parsing failed; BodyText then carries a
	// human-readable marker instead of content.
	Err error
}

// Failed reports whether the page is an error placeholder.
func (p Page) Failed() bool {
	return p.Err != nil
}

// Empty reports whether the page is the "not discovered" placeholder.
func (p Page) Empty() bool {
	return p.URL == "" && p.Err == nil
}

// ErrorPage builds the degraded page for a failed scrape.
func ErrorPage(urlStr string, err error) Page {
	return Page{
		URL:      urlStr,
		BodyText: fmt.Sprintf("Error scraping %s: %v", urlStr, err),
		Err:      err,
	}
}

// Scrape fetches a URL and extracts its title and narrative text.
// It never returns an error: failures become an ErrorPage.
func (f *Fetcher) Scrape(ctx context.Context, urlStr string) Page {
	result, err := f.Fetch(ctx, urlStr)
	if err != nil {
		return ErrorPage(urlStr, err)
	}

	title, body, err := ExtractNarrative(result.HTML)
	if err != nil {
		return ErrorPage(urlStr, err)
	}

	return Page{
		URL:        urlStr,
		Title:      title,
		BodyText:   body,
		RawHTML:    result.HTML,
		StatusCode: result.StatusCode,
	}
}
