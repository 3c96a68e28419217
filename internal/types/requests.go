// Package types provides request and response shapes for the client-research HTTP API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// ReportRequest asks for a research report on a company website.
// Either URL or Company must be set; Company is resolved to a URL by web search.
type ReportRequest struct {
	URL     string `json:"url,omitempty" validate:"omitempty,http_url"`
	Company string `json:"company,omitempty" validate:"required_without=URL,max=200"`
	Role    string `json:"role" validate:"required,max=100"`
	Format  string `json:"format,omitempty" validate:"omitempty,oneof=json markdown md"`
}

// Validate validates the ReportRequest using the validator.
func (r *ReportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RoleInfo describes one selectable requester role.
type RoleInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// RolesResponse lists the roles the API accepts.
type RolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// CompleteEvent closes a report stream.
type CompleteEvent struct {
	ReportID string `json:"report_id,omitempty"`
	Status   string `json:"status"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
