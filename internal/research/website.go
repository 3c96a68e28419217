package research

import (
	"context"
	"fmt"
	"net/url"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// WebsiteFinder resolves a company name to its website through the Google
// Programmable Search API.
type WebsiteFinder struct {
	svc *customsearch.Service
	cx  string
}

// NewWebsiteFinder creates a finder for the search engine cx. Extra client
// options (endpoint, HTTP client) are passed through to the API client.
func NewWebsiteFinder(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*WebsiteFinder, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &WebsiteFinder{svc: svc, cx: cx}, nil
}

// Find returns the first absolute http(s) result link for "<company> official website".
func (f *WebsiteFinder) Find(ctx context.Context, company string) (string, error) {
	if company == "" {
		return "", &LookupError{Company: company, Message: "company name is empty"}
	}

	query := fmt.Sprintf("%s official website", company)
	resp, err := f.svc.Cse.List().Cx(f.cx).Q(query).Num(5).Context(ctx).Do()
	if err != nil {
		return "", &LookupError{Company: company, Message: "search failed", Cause: err}
	}

	for _, item := range resp.Items {
		u, err := url.Parse(item.Link)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			continue
		}
		return item.Link, nil
	}
	return "", &LookupError{Company: company, Message: "no search results"}
}
