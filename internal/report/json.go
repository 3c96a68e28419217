package report

import (
	"encoding/json"
	"io"

	"github.com/jonathan/client-research/internal/schemas"
)

// WriteJSON writes r as indented JSON after validating it against the report schema.
func WriteJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return &Error{Message: "failed to encode report", Cause: err}
	}
	if err := schemas.ValidateReport(data); err != nil {
		return &Error{Message: "report does not match schema", Cause: err}
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return &Error{Message: "failed to write report", Cause: err}
	}
	return nil
}
