package research

import (
	"errors"
	"fmt"
)

// SummarizeError is returned when the summarizer fails. It is the only
// user-visible failure of a research run.
type SummarizeError struct {
	Model string
	Cause error
}

func (e *SummarizeError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("summarization with %s failed: %v", e.Model, e.Cause)
	}
	return fmt.Sprintf("summarization failed: %v", e.Cause)
}

func (e *SummarizeError) Unwrap() error {
	return e.Cause
}

// LookupError represents a failure to resolve a company name to a website.
type LookupError struct {
	Company string
	Message string
	Cause   error
}

func (e *LookupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("website lookup for %q: %s: %v", e.Company, e.Message, e.Cause)
	}
	return fmt.Sprintf("website lookup for %q: %s", e.Company, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

var errNoSummarizer = errors.New("no summarizer configured")
