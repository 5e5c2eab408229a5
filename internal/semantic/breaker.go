package semantic

import (
	"fmt"

	"github.com/sony/gobreaker/v2"
	"resumetric/internal/config"
	"resumetric/internal/errors"
)

// EmbeddingCircuitBreaker wraps embedding calls with the circuit breaker
// pattern so a degraded provider sheds load fast instead of stacking up
// timeouts.
type EmbeddingCircuitBreaker struct {
	cb *gobreaker.CircuitBreaker[[]float64]
}

// NewEmbeddingCircuitBreaker creates a circuit breaker for an embedding
// provider. Returns nil when disabled; a nil breaker executes directly.
func NewEmbeddingCircuitBreaker(providerName string, cfg config.CircuitBreakerConfig, logger *errors.Logger) *EmbeddingCircuitBreaker {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        fmt.Sprintf("Embedding-%s", providerName),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"provider", providerName,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", cfg.FailureThreshold)
		},
	}

	return &EmbeddingCircuitBreaker{
		cb: gobreaker.NewCircuitBreaker[[]float64](settings),
	}
}

// Execute runs the embedding call with circuit breaker protection
func (cb *EmbeddingCircuitBreaker) Execute(fn func() ([]float64, error)) ([]float64, error) {
	if cb == nil || cb.cb == nil {
		// If breaker is disabled/nil, just execute the function directly
		return fn()
	}
	return cb.cb.Execute(fn)
}

// GetStats returns circuit breaker statistics
func (cb *EmbeddingCircuitBreaker) GetStats() map[string]any {
	if cb == nil || cb.cb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	return map[string]any{
		"name":    cb.cb.Name(),
		"state":   cb.cb.State().String(),
		"counts":  cb.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the circuit breaker is in closed state
func (cb *EmbeddingCircuitBreaker) IsHealthy() bool {
	if cb == nil || cb.cb == nil {
		return true // If no circuit breaker, consider it healthy
	}
	return cb.cb.State() == gobreaker.StateClosed
}
