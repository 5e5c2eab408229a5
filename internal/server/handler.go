package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"resumetric/internal/observability"
	"resumetric/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// validateTextField checks presence and size of a request text field.
// Returns false after writing the error response when validation fails.
func (s *Server) validateTextField(w http.ResponseWriter, span oteltrace.Span, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		err := fmt.Errorf("missing %s", field)
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, fmt.Sprintf("Missing %s", field),
			fmt.Sprintf("%s field is required", field), http.StatusBadRequest)
		return false
	}

	if s.MaxRequestSize > 0 && len(value) > int(s.MaxRequestSize/2) {
		err := fmt.Errorf("%s too large: %d chars", field, len(value))
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, fmt.Sprintf("%s too large", field),
			fmt.Sprintf("%s exceeds recommended size limit of %d characters", field, s.MaxRequestSize/2),
			http.StatusBadRequest)
		return false
	}

	return true
}

// createQualityHandler wraps the quality scoring handler with observability
func (s *Server) createQualityHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumetric.api")
		ctx, span := tracer.Start(ctx, "api.quality")
		defer span.End()

		var req QualityRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if !s.validateTextField(w, span, "resumeText", req.ResumeText) {
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "quality"),
		)

		metrics := om.GetMetrics()
		var report types.QualityReport
		err := metrics.TrackScoringOperation(ctx, "quality", func(ctx context.Context) error {
			report = s.Engine.Quality.Score(s.truncateInput(req.ResumeText))
			return nil
		})
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "quality_scored", false)
			writeErrorResponse(w, "Failed to score resume quality", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "quality_scored", true,
			attribute.Float64("quality.score", report.ResumeScore))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("quality.score", report.ResumeScore),
		)

		writeJSONResponse(w, report)
	}
}

// createMatchHandler wraps the lexical match handler with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumetric.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if !s.validateTextField(w, span, "resumeText", req.ResumeText) {
			return
		}
		if !s.validateTextField(w, span, "jobDescription", req.JobDescription) {
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "match"),
		)

		metrics := om.GetMetrics()
		var report types.MatchReport
		err := metrics.TrackScoringOperation(ctx, "match", func(ctx context.Context) error {
			report = s.Engine.Matcher.Match(
				s.truncateInput(req.ResumeText),
				s.truncateInput(req.JobDescription))
			return nil
		})
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "match_scored", false)
			writeErrorResponse(w, "Failed to match resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "match_scored", true,
			attribute.Float64("ats.score", report.ATSMatchScore),
			attribute.String("verdict", report.Verdict))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("ats.score", report.ATSMatchScore),
			attribute.String("verdict", report.Verdict),
		)

		writeJSONResponse(w, report)
	}
}

// createGapsHandler wraps the semantic gap analysis handler with observability
func (s *Server) createGapsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumetric.api")
		ctx, span := tracer.Start(ctx, "api.gaps")
		defer span.End()

		if s.Engine.Gaps == nil {
			writeErrorResponse(w, "Semantic analysis unavailable",
				"embedding provider is not configured", http.StatusServiceUnavailable)
			return
		}

		var req GapsRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if !s.validateTextField(w, span, "resumeText", req.ResumeText) {
			return
		}
		if !s.validateTextField(w, span, "jobDescription", req.JobDescription) {
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "gaps"),
		)

		metrics := om.GetMetrics()
		var report types.GapReport
		err := metrics.TrackScoringOperation(ctx, "gaps", func(ctx context.Context) error {
			var analyzeErr error
			report, analyzeErr = s.Engine.Gaps.Analyze(ctx,
				s.truncateInput(req.ResumeText),
				s.truncateInput(req.JobDescription))
			return analyzeErr
		})
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "embedding"))
			metrics.RecordBusinessMetric(ctx, "gaps_analyzed", false,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze gaps", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "gaps_analyzed", true,
			attribute.Float64("semantic.score", report.SemanticMatchScore),
			attribute.String("verdict", report.Verdict))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("semantic.score", report.SemanticMatchScore),
			attribute.String("verdict", report.Verdict),
		)

		writeJSONResponse(w, report)
	}
}

// createSuggestHandler wraps the improvement suggestion handler with observability
func (s *Server) createSuggestHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumetric.api")
		ctx, span := tracer.Start(ctx, "api.suggest")
		defer span.End()

		var req SuggestRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if !s.validateTextField(w, span, "resumeText", req.ResumeText) {
			return
		}
		if !s.validateTextField(w, span, "jobDescription", req.JobDescription) {
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "suggest"),
		)

		metrics := om.GetMetrics()
		var report types.ImprovementReport
		err := metrics.TrackScoringOperation(ctx, "suggest", func(ctx context.Context) error {
			report = s.Engine.Advisor.Suggest(
				s.truncateInput(req.ResumeText),
				s.truncateInput(req.JobDescription))
			return nil
		})
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "suggestions_generated", false)
			writeErrorResponse(w, "Failed to generate suggestions", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "suggestions_generated", true,
			attribute.Int("suggestions.critical", len(report.CriticalImprovements)),
			attribute.Int("suggestions.missing_skills", len(report.DetectedMissingSkills)))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("suggestions.critical", len(report.CriticalImprovements)),
		)

		writeJSONResponse(w, report)
	}
}

// createPredictHandler wraps the model prediction handler with observability
func (s *Server) createPredictHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumetric.api")
		ctx, span := tracer.Start(ctx, "api.predict")
		defer span.End()

		if s.Engine.Predictor == nil {
			writeErrorResponse(w, "Score prediction unavailable",
				"score model is not configured", http.StatusServiceUnavailable)
			return
		}

		var req PredictRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if !s.validateTextField(w, span, "resumeText", req.ResumeText) {
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "predict"),
		)

		metrics := om.GetMetrics()
		var score types.PredictedScore
		err := metrics.TrackScoringOperation(ctx, "predict", func(ctx context.Context) error {
			score = s.Engine.Predictor.Predict(s.truncateInput(req.ResumeText))
			return nil
		})
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "score_predicted", false)
			writeErrorResponse(w, "Failed to predict score", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "score_predicted", true,
			attribute.Float64("predicted.score", score.MLResumeScore),
			attribute.String("model.version", score.ModelVersion))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("predicted.score", score.MLResumeScore),
			attribute.String("model.version", score.ModelVersion),
		)

		writeJSONResponse(w, score)
	}
}
