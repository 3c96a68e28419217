package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/client-research/internal/report"
	"github.com/jonathan/client-research/internal/research"
	"github.com/jonathan/client-research/internal/roles"
	"github.com/jonathan/client-research/internal/server/middleware"
	"github.com/jonathan/client-research/internal/types"
)

const maxRequestBytes = 64 << 10

// handleCreateReport runs the research pipeline and returns the finished
// report. JSON is the default; "markdown" returns a downloadable document.
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeReportRequest(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.runTimeout)
	defer cancel()

	rep, body, err := s.runReport(ctx, req, nil)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	format := responseFormat(req)
	w.Header().Set("Content-Type", format.ContentType())
	if format == report.FormatMarkdown {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename(format)))
	}
	w.WriteHeader(http.StatusOK)
	if format == report.FormatJSON {
		_, _ = w.Write(body)
		return
	}
	if err := report.WriteMarkdown(w, rep); err != nil {
		s.logger.Warn("failed to write markdown report", zap.Error(err))
	}
}

// handleCreateReportStream runs the pipeline and streams progress as SSE.
// Events: "step" for each pipeline step, "report" with the JSON report,
// "error" on failure, and a final "complete".
func (s *Server) handleCreateReportStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeReportRequest(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.runTimeout)
	defer cancel()

	progress := func(event research.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.logger.Debug("failed to write progress event", zap.Error(err))
		}
	}

	rep, body, err := s.runReport(ctx, req, progress)
	if err != nil {
		_, code := classify(err)
		s.logFailure(r, err)
		sse.WriteError(code, err.Error())
		sse.WriteComplete("", "failed")
		return
	}

	if err := sse.WriteEvent("report", json.RawMessage(body)); err != nil {
		s.logger.Warn("failed to write report event", zap.Error(err))
		return
	}
	sse.WriteComplete(rep.ID.String(), "completed")
}

// decodeReportRequest reads and validates the request body.
func (s *Server) decodeReportRequest(w http.ResponseWriter, r *http.Request) (*types.ReportRequest, error) {
	var req types.ReportRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := req.Validate(); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			fe := fields[0]
			return nil, &ErrValidation{
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("failed '%s' validation", fe.Tag()),
			}
		}
		return nil, err
	}
	return &req, nil
}

// runReport resolves the seed, runs the pipeline and encodes the JSON report.
// The JSON body is schema-validated even when markdown is requested.
func (s *Server) runReport(ctx context.Context, req *types.ReportRequest, progress research.ProgressCallback) (*report.Report, []byte, error) {
	seed, err := s.resolveSeed(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	role := roles.Parse(req.Role)
	result, err := s.runner.RunWithProgress(ctx, seed, role, progress)
	if err != nil {
		return nil, nil, err
	}

	rep := report.New(seed, result)
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, rep); err != nil {
		return nil, nil, err
	}
	return rep, buf.Bytes(), nil
}

// resolveSeed returns the request URL, looking the company up when no URL is given.
func (s *Server) resolveSeed(ctx context.Context, req *types.ReportRequest) (string, error) {
	if req.URL != "" {
		return req.URL, nil
	}
	if s.finder == nil {
		return "", &ErrLookupUnavailable{}
	}
	return s.finder.Find(ctx, req.Company)
}

// handleError logs err and writes the matching JSON error response.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	s.logFailure(r, err)
	s.errorResponse(w, status, code, err.Error())
}

func (s *Server) logFailure(r *http.Request, err error) {
	status, code := classify(err)
	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("code", code),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("report request failed", fields...)
		return
	}
	s.logger.Info("report request rejected", fields...)
}

func responseFormat(req *types.ReportRequest) report.Format {
	if req.Format == "" {
		return report.FormatJSON
	}
	format, err := report.ParseFormat(req.Format)
	if err != nil {
		return report.FormatJSON
	}
	return format
}
