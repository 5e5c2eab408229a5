package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Engine defaults. The embedding cap mirrors the page-capped extraction
	// upstream: 4000 chars keeps embedding latency bounded.
	v.SetDefault("engine.maxInputChars", 20000)
	v.SetDefault("engine.maxEmbeddingChars", 4000)
	v.SetDefault("engine.tfidfMaxFeatures", 500)

	// Embedding provider defaults
	v.SetDefault("embedding.provider", "gemini")
	v.SetDefault("embedding.model", "gemini-embedding-001")
	v.SetDefault("embedding.apiKey", "")
	v.SetDefault("embedding.timeout", 30*time.Second)
	v.SetDefault("embedding.maxRetries", 2)
	v.SetDefault("embedding.outputDim", 768)

	v.SetDefault("embedding.circuitBreaker.enabled", true)
	v.SetDefault("embedding.circuitBreaker.maxRequests", 3)
	v.SetDefault("embedding.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("embedding.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("embedding.circuitBreaker.minRequests", 3)
	v.SetDefault("embedding.circuitBreaker.failureThreshold", 0.6)

	// Learned predictor artifact defaults
	v.SetDefault("model.path", "models/resume_score_model.json")
	v.SetDefault("model.autoReload", false)
	v.SetDefault("model.reloadDebounce", 2*time.Second)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.apiKeys", []string{})
	v.SetDefault("server.maxRequestSize", int64(1024*1024)) // 1 MB

	// Rate Limiting defaults
	v.SetDefault("server.rateLimit.enabled", true)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", int64(10*1024*1024)) // 10 MB

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumetric")
	v.SetDefault("observability.serviceVersion", "")
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", false)
	v.SetDefault("observability.prometheus.enabled", false)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.healthCheck.timeout", 10*time.Second)
	v.SetDefault("observability.healthCheck.embedderCheckTimeout", 5*time.Second)
}
