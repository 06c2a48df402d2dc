package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumelab/internal/ai"
	"resumelab/internal/errors"
	"resumelab/internal/observability"
	"resumelab/internal/suggest"
	"resumelab/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createImproveHandler wraps the improve handler with observability
func (s *Server) createImproveHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelab.api")
		ctx, span := tracer.Start(ctx, "api.improve")
		defer span.End()

		// Parse request
		var req ImproveRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		action := types.ImproveAction(req.Action)
		if req.Action == "" {
			action = types.ActionAutoImprove
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("request.action", string(action)),
			attribute.String("operation", "improve"),
		)

		input := types.ImproveResumeInput{
			ResumeText: req.ResumeText,
			TargetRole: req.TargetRole,
			TargetArea: req.TargetArea,
			Action:     action,
			Command:    req.Command,
		}

		// Create AI service for improve operation
		improveConfig := s.AppConfig.GetImproveConfig()
		aiService, err := ai.NewService(&improveConfig, "improve", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		// Track AI operation with observability and token usage
		metrics := om.GetMetrics()
		var result types.ImproveResumeOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "improve", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.ImproveResume(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_improved", false, om,
				attribute.String("error", err.Error()))
			writeDomainError(w, "Failed to improve resume", err)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_improved", true, om,
			attribute.Int("output.improved_length", len(result.ImprovedText)),
			attribute.String("action", string(action)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.improved_length", len(result.ImprovedText)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelab.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation (similar to improve)
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.TargetRole) == "" {
			err := fmt.Errorf("missing target role")
			span.RecordError(err)
			writeErrorResponse(w, "Missing target role", "targetRole field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("request.target_role", req.TargetRole),
			attribute.String("operation", "analyze"),
		)

		input := types.AnalyzeResumeInput{
			ResumeText: req.ResumeText,
			TargetRole: req.TargetRole,
			TargetArea: req.TargetArea,
		}

		// Create AI service for analyze operation
		analyzeConfig := s.AppConfig.GetAnalyzeConfig()
		aiService, err := ai.NewService(&analyzeConfig, "analyze", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result *types.AnalysisResult
		err = metrics.TrackAIOperationWithTokens(ctx, "analyze", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.AnalyzeResume(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false, om)
			writeDomainError(w, "Failed to analyze resume", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true, om,
			attribute.Int("overall_score", result.OverallScore),
			attribute.Int("improvements_count", len(result.Improvements)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("overall_score", result.OverallScore),
			attribute.Int("improvements_count", len(result.Improvements)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createSuggestHandler runs the heuristic suggestion engine. No AI call
// is involved, so the handler only carries the request span and the
// business metric.
func (s *Server) createSuggestHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelab.api")
		ctx, span := tracer.Start(ctx, "api.suggest")
		defer span.End()

		var req SuggestRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("request.target_role", req.TargetRole),
			attribute.String("operation", "suggest"),
		)

		suggestions := s.Suggest.Analyze(suggest.Input{
			ResumeText: req.ResumeText,
			TargetRole: req.TargetRole,
			TargetArea: req.TargetArea,
			Section:    req.Section,
		})

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "suggestions_generated", true, om,
			attribute.Int("suggestions_count", len(suggestions)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("suggestions_count", len(suggestions)),
		)

		response := map[string]any{
			"suggestions": suggestions,
			"count":       len(suggestions),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// writeDomainError maps the application error taxonomy to HTTP status
// codes: invalid requests are the caller's fault, upstream AI failures
// and malformed AI output surface as a bad gateway with a
// distinguishing code in the body.
func writeDomainError(w http.ResponseWriter, label string, err error) {
	switch {
	case errors.IsInvalidRequest(err):
		writeErrorResponse(w, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.IsAIUnavailable(err):
		writeErrorResponse(w, "AI_UNAVAILABLE", err.Error(), http.StatusBadGateway)
	case errors.IsMalformedResponse(err):
		writeErrorResponse(w, "MALFORMED_AI_RESPONSE", err.Error(), http.StatusBadGateway)
	default:
		writeErrorResponse(w, label, err.Error(), http.StatusInternalServerError)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
