// Package fetch provides URL fetching and narrative text extraction for company pages.
// This package centralizes HTTP fetching logic used by discovery and research.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ClientResearch/1.0)"

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 5 << 20

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// ErrorKind classifies why a fetch failed.
type ErrorKind string

const (
	// KindInvalidURL means the input could not be used as an absolute http(s) URL
	KindInvalidURL ErrorKind = "invalid_url"
	// KindTransport covers network failures, timeouts and protocol errors
	KindTransport ErrorKind = "transport"
	// KindRead means the response arrived but its body could not be read
	KindRead ErrorKind = "read"
)

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Transient reports whether retrying the same URL later could succeed.
func (e *Error) Transient() bool {
	return e.Kind == KindTransport || e.Kind == KindRead
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher issues single-attempt GET requests with a shared, read-only client.
type Fetcher struct {
	client  *http.Client
	options *Options
}

// NewFetcher creates a Fetcher. A nil client gets one built from opts.Timeout.
func NewFetcher(client *http.Client, opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Fetcher{client: client, options: opts}
}

// Fetch retrieves HTML content from a URL.
// Non-2xx responses are returned as results, not errors; StatusCode tells them apart.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	// Validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Host == "" || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, &Error{
			URL:     urlStr,
			Kind:    KindInvalidURL,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Kind:    KindInvalidURL,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", f.options.UserAgent)
	for key, value := range f.options.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Kind:    KindTransport,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Kind:    KindRead,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	return &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}
