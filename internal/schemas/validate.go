// Package schemas provides JSON Schema validation for report artifacts.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ReportSchemaName identifies the embedded report schema in errors.
const ReportSchemaName = "report.schema.json"

//go:embed report.schema.json
var reportSchema string

// ReportSchema returns the embedded report schema document.
func ReportSchema() string {
	return reportSchema
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading the schema or the document
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateReport validates a JSON report document against the embedded schema.
func ValidateReport(document []byte) error {
	return validate(ReportSchemaName, gojsonschema.NewStringLoader(reportSchema), gojsonschema.NewBytesLoader(document))
}

// ValidateReportFile validates a JSON report file on disk against the embedded schema.
func ValidateReportFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report %s: %w", path, err)
	}
	return ValidateReport(data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)", gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
}

func validate(schemaName string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
