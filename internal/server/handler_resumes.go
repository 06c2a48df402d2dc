package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"resumelab/internal/errors"
	"resumelab/internal/extract"
	"resumelab/internal/observability"
	"resumelab/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// ExtractResponse represents the response body for the extract endpoint
type ExtractResponse struct {
	Text       string            `json:"text"`
	Sections   []extract.Section `json:"sections"`
	Characters int               `json:"characters"`
}

// createExtractHandler accepts a multipart resume upload and returns
// the extracted plain text plus the detected sections. PDF payloads go
// through the PDF parser; anything else is treated as UTF-8 text.
func (s *Server) createExtractHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelab.api")
		ctx, span := tracer.Start(ctx, "api.extract")
		defer span.End()

		if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid multipart request", err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume file", "multipart field 'file' is required", http.StatusBadRequest)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.Warn("Failed to close uploaded file", "error", err)
			}
		}()

		data, err := io.ReadAll(file)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to read uploaded file", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.filename", header.Filename),
			attribute.Int("request.size_bytes", len(data)),
			attribute.String("operation", "extract"),
		)

		text, err := extractUpload(header.Filename, data)
		metrics := om.GetMetrics()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			metrics.RecordBusinessMetric(ctx, "text_extracted", false, om,
				attribute.String("filename", header.Filename))
			writeErrorResponse(w, "Failed to extract resume text", err.Error(), http.StatusUnprocessableEntity)
			return
		}

		metrics.RecordBusinessMetric(ctx, "text_extracted", true, om,
			attribute.Int("text_length", len(text)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.text_length", len(text)),
		)

		response := ExtractResponse{
			Text:       text,
			Sections:   extract.Sections(text),
			Characters: len(text),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// extractUpload picks the extraction path by payload, not by the
// client-supplied filename alone.
func extractUpload(filename string, data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte("%PDF-")) || strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return extract.FromPDF(data)
	}
	return strings.TrimSpace(string(data)), nil
}

// createResumesHandler serves the resume collection: create on POST,
// list on GET.
func (s *Server) createResumesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleSaveResume(om, w, r)
		case http.MethodGet:
			s.handleListResumes(om, w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// createResumeByIDHandler serves a single resume record: fetch on GET,
// remove on DELETE.
func (s *Server) createResumeByIDHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.handleGetResume(om, w, r)
		case http.MethodDelete:
			s.handleDeleteResume(om, w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleSaveResume(om *observability.ObservabilityManager, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracer := om.Tracer("resumelab.api")
	ctx, span := tracer.Start(ctx, "api.resumes.save")
	defer span.End()

	var req SaveResumeRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		err := fmt.Errorf("missing resume text")
		span.RecordError(err)
		writeErrorResponse(w, "Missing resume text", "text field is required", http.StatusBadRequest)
		return
	}

	record, err := s.Store.Save(ctx, types.ResumeRecord{
		Name:       req.Name,
		Text:       req.Text,
		TargetRole: req.TargetRole,
		TargetArea: req.TargetArea,
	})
	if err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Failed to save resume", err.Error(), http.StatusInternalServerError)
		return
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.String("resume.id", record.ID),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(record); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (s *Server) handleListResumes(om *observability.ObservabilityManager, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracer := om.Tracer("resumelab.api")
	ctx, span := tracer.Start(ctx, "api.resumes.list")
	defer span.End()

	records, err := s.Store.List(ctx)
	if err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Failed to list resumes", err.Error(), http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("resumes.count", len(records)))

	response := map[string]any{
		"resumes": records,
		"count":   len(records),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (s *Server) handleGetResume(om *observability.ObservabilityManager, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracer := om.Tracer("resumelab.api")
	ctx, span := tracer.Start(ctx, "api.resumes.get")
	defer span.End()

	id := r.PathValue("id")
	span.SetAttributes(attribute.String("resume.id", id))

	record, err := s.Store.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(record); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (s *Server) handleDeleteResume(om *observability.ObservabilityManager, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracer := om.Tracer("resumelab.api")
	ctx, span := tracer.Start(ctx, "api.resumes.delete")
	defer span.End()

	id := r.PathValue("id")
	span.SetAttributes(attribute.String("resume.id", id))

	if err := s.Store.Delete(ctx, id); err != nil {
		span.RecordError(err)
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeStoreError maps storage errors to status codes
func writeStoreError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) && appErr.Code == errors.ErrCodeRecordNotFound {
		writeErrorResponse(w, "Resume not found", err.Error(), http.StatusNotFound)
		return
	}
	writeErrorResponse(w, "Storage error", err.Error(), http.StatusInternalServerError)
}
