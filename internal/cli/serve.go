package cli

import (
	"resumetric/internal/analysis"
	"resumetric/internal/config"
	"resumetric/internal/errors"
	"resumetric/internal/ml"
	"resumetric/internal/semantic"
	"resumetric/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume scoring and gap analysis",
	Long: `Start an HTTP server that provides REST API endpoints for resume scoring.

Available endpoints:
- POST /quality: Score standalone resume quality
- POST /match: Match a resume against a job description
- POST /gaps: Semantic gap analysis between resume and job description
- POST /suggest: Generate improvement suggestions
- POST /predict: Predict a resume score with the learned model
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
}

// buildEngine constructs the scoring engine the server dispatches to.
// A failed predictor or embedder disables that capability but leaves the
// rest of the server functional; health reports the degradation.
func buildEngine(cfg *config.Config, logger *errors.Logger) *server.Engine {
	engine := &server.Engine{
		Quality: analysis.NewQualityScorer(cfg.Vocabulary),
		Matcher: analysis.NewMatcher(cfg.Vocabulary, cfg.Engine.TFIDFMaxFeatures),
		Advisor: analysis.NewAdvisor(cfg.Vocabulary),
	}

	extractor := analysis.NewExtractor(cfg.Vocabulary)
	predictor, err := ml.NewPredictor(cfg.Model.Path, extractor, logger)
	if err != nil {
		logger.LogError(err, "Score model unavailable, /predict will be disabled",
			"model_path", cfg.Model.Path)
	} else {
		engine.Predictor = predictor

		if cfg.Model.AutoReload {
			watcher := ml.NewModelWatcher(cfg.Model.Path, cfg.Model.ReloadDebounce, predictor, logger)
			if err := watcher.Start(); err != nil {
				logger.LogError(err, "Failed to start model artifact watcher")
			} else {
				engine.ModelWatcher = watcher
			}
		}
	}

	embedder, err := newEmbedder(cfg, logger)
	if err != nil {
		logger.LogError(err, "Embedding provider unavailable, /gaps will be disabled",
			"provider", cfg.Embedding.Provider)
	} else {
		engine.Embedder = embedder
		engine.Gaps = semantic.NewAnalyzer(embedder, cfg.Vocabulary, cfg.Engine.MaxEmbeddingChars)
	}

	return engine
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	engine := buildEngine(cfg, logger)

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.Server.MaxRequestSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, engine, logger).Start()
}
