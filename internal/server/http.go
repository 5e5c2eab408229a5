package server

import (
	"time"

	"resumetric/internal/analysis"
	"resumetric/internal/config"
	resumetricErrors "resumetric/internal/errors"
	"resumetric/internal/ml"
	"resumetric/internal/semantic"
)

// QualityRequest represents the request body for the quality endpoint
type QualityRequest struct {
	ResumeText string `json:"resumeText"`
}

// MatchRequest represents the request body for the match endpoint
type MatchRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// GapsRequest represents the request body for the gaps endpoint
type GapsRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// SuggestRequest represents the request body for the suggest endpoint
type SuggestRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// PredictRequest represents the request body for the predict endpoint
type PredictRequest struct {
	ResumeText string `json:"resumeText"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Engine bundles the scoring components the HTTP endpoints dispatch to.
// All components are constructed once at startup and are safe for
// concurrent use.
type Engine struct {
	Quality   *analysis.QualityScorer
	Matcher   *analysis.Matcher
	Advisor   *analysis.Advisor
	Predictor *ml.Predictor
	Gaps      *semantic.Analyzer
	Embedder  semantic.Embedder

	// Optional model artifact watcher, stopped on shutdown
	ModelWatcher *ml.ModelWatcher
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Scoring engine
	Engine *Engine

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *resumetricErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, engine *Engine, logger *resumetricErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		Engine:         engine,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}

// truncateInput caps raw input text before it reaches any scorer
func (s *Server) truncateInput(text string) string {
	return analysis.Truncate(text, s.AppConfig.Engine.MaxInputChars)
}
