package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"resumetric/internal/semantic"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	timeout := s.AppConfig.Observability.HealthCheck.EmbedderCheckTimeout
	if timeout <= 0 {
		timeout = s.AppConfig.Observability.HealthCheck.Timeout
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return timeout
}

// healthHandler provides a health check endpoint covering the score model
// and the embedding provider
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "resumetric",
		"version": s.Version,
	}

	overallHealthy := true

	modelStatus := s.checkModelHealth()
	response["score_model"] = modelStatus
	if available, ok := modelStatus["available"].(bool); ok && !available {
		overallHealthy = false
	}

	embedderStatus := s.checkEmbedderHealth()
	response["embedding_provider"] = embedderStatus
	if available, ok := embedderStatus["available"].(bool); ok && !available {
		overallHealthy = false
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkModelHealth reports the status of the learned score model
func (s *Server) checkModelHealth() map[string]any {
	if s.Engine == nil || s.Engine.Predictor == nil {
		return map[string]any{
			"available": false,
			"error":     "score predictor not configured",
		}
	}

	status := map[string]any{
		"available":     true,
		"model_version": s.Engine.Predictor.Version(),
	}

	if s.Engine.ModelWatcher != nil {
		status["auto_reload"] = true
	}

	return status
}

// checkEmbedderHealth reports the status of the embedding provider
func (s *Server) checkEmbedderHealth() map[string]any {
	if s.Engine == nil || s.Engine.Embedder == nil {
		return map[string]any{
			"available": false,
			"error":     "embedding provider not configured",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.getHealthCheckTimeout())
	defer cancel()

	status := map[string]any{
		"provider": s.AppConfig.Embedding.Provider,
	}

	if err := s.Engine.Embedder.Ready(ctx); err != nil {
		status["available"] = false
		status["error"] = err.Error()
	} else {
		status["available"] = true
	}

	// Surface circuit breaker state for providers that carry one
	if gemini, ok := s.Engine.Embedder.(*semantic.GeminiEmbedder); ok {
		status["circuit_breaker"] = gemini.GetCircuitBreakerStats()
	}

	return status
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "resumetric",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	if s.Engine != nil && s.Engine.Predictor != nil {
		response["score_model"] = map[string]any{
			"version": s.Engine.Predictor.Version(),
		}
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeJSONResponse writes a successful JSON response
func writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
