package semantic

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"resumetric/internal/config"
	apperrors "resumetric/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiEmbedder produces sentence embeddings via the Gemini embedding API.
type GeminiEmbedder struct {
	client         *genai.Client
	config         *config.EmbeddingConfig
	circuitBreaker *EmbeddingCircuitBreaker
	logger         *apperrors.Logger
}

// Ensure GeminiEmbedder implements Embedder
var _ Embedder = (*GeminiEmbedder)(nil)

// NewGeminiEmbedder creates a Gemini-backed embedder.
func NewGeminiEmbedder(cfg *config.EmbeddingConfig, logger *apperrors.Logger) (*GeminiEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewConfigError(apperrors.ErrCodeMissingAPIKey,
			"embedding API key is not configured", nil)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, apperrors.NewEmbeddingError(apperrors.ErrCodeEmbeddingUnavailable,
			"failed to create Gemini client", err)
	}

	return &GeminiEmbedder{
		client:         client,
		config:         cfg,
		circuitBreaker: NewEmbeddingCircuitBreaker("gemini", cfg.CircuitBreaker, logger),
		logger:         logger,
	}, nil
}

// Embed requests a single embedding, normalized to unit length. The call is
// wrapped in a circuit breaker and retried with exponential backoff.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	tracer := otel.Tracer("resumetric.semantic.gemini")
	ctx, span := tracer.Start(ctx, "gemini.embed_content")
	defer span.End()

	span.SetAttributes(
		attribute.String("embedding.provider", "gemini"),
		attribute.String("embedding.model", g.config.Model),
		attribute.Int("embedding.input_length", len(text)),
	)

	vec, err := g.circuitBreaker.Execute(func() ([]float64, error) {
		return g.embedWithRetry(ctx, text)
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, apperrors.NewEmbeddingError(apperrors.ErrCodeEmbeddingFailed,
			"failed to embed text", err)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("embedding.dimension", len(vec)),
	)
	return vec, nil
}

// embedWithRetry executes the embedding call with retry logic and exponential backoff
func (g *GeminiEmbedder) embedWithRetry(ctx context.Context, text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying embedding call",
				"attempt", attempt,
				"max_retries", g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		vec, err := g.embedOnce(ctx, text)
		if err == nil {
			if attempt > 0 {
				g.logger.Info("Embedding call succeeded after retry",
					"successful_attempt", attempt+1)
			}
			return vec, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "Embedding call failed after all retry attempts",
		"total_attempts", g.config.MaxRetries+1)

	return nil, fmt.Errorf("embedding failed after %d retries: %w", g.config.MaxRetries, lastErr)
}

// embedOnce performs a single EmbedContent request.
func (g *GeminiEmbedder) embedOnce(ctx context.Context, text string) ([]float64, error) {
	callCtx := ctx
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	embedConfig := &genai.EmbedContentConfig{}
	if g.config.OutputDim > 0 {
		dim := int32(g.config.OutputDim)
		embedConfig.OutputDimensionality = &dim
	}

	result, err := g.client.Models.EmbedContent(callCtx, g.config.Model,
		genai.Text(text), embedConfig)
	if err != nil {
		return nil, err
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embedding response contained no values")
	}

	values := result.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}

	// Truncated-dimension embeddings are not unit length; normalize so cosine
	// comparisons stay consistent across dimensions.
	l2Normalize(vec)
	return vec, nil
}

// Ready verifies the configured embedding model is reachable.
func (g *GeminiEmbedder) Ready(ctx context.Context) error {
	_, err := g.client.Models.Get(ctx, g.config.Model, &genai.GetModelConfig{})
	if err != nil {
		return apperrors.NewEmbeddingError(apperrors.ErrCodeEmbeddingUnavailable,
			"embedding model is not reachable", err).WithContext("model", g.config.Model)
	}
	return nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiEmbedder) GetCircuitBreakerStats() map[string]any {
	return g.circuitBreaker.GetStats()
}

// Close implements Embedder
func (g *GeminiEmbedder) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}
