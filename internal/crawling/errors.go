// Package crawling discovers related pages of a company website by matching
// keywords against the anchors of a page.
package crawling

import "fmt"

// LinkExtractionError represents a failure in reading links from HTML
type LinkExtractionError struct {
	Message string
	Cause   error
}

func (e *LinkExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("link extraction error: %s", e.Message)
}

func (e *LinkExtractionError) Unwrap() error {
	return e.Cause
}
