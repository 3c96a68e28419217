package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/client-research/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON report against the report schema",
	RunE:  runValidate,
}

var validateInput string

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to a JSON report (required)")
	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	err := schemas.ValidateReportFile(validateInput)
	if err == nil {
		_, _ = fmt.Fprintf(out, "Validation passed: %s\n", validateInput)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(out, "Validation failed: %s\n", validateInput)
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("report does not match schema %s", schemas.ReportSchemaName)
	}
	return err
}
