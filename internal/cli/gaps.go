package cli

import (
	"context"
	"fmt"

	"resumetric/internal/analysis"
	"resumetric/internal/common"
	"resumetric/internal/config"
	"resumetric/internal/errors"
	"resumetric/internal/semantic"
	"resumetric/internal/types"

	"github.com/spf13/cobra"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps [resume-file] [job-description-file]",
	Short: "Detect semantic gaps between a resume and a job description",
	Long: `Detect semantic gaps between a resume and a job description using
sentence embeddings. Reports an overall semantic match score plus missing
skills, experience shortfall, project experience, unaddressed
responsibilities, and domain experience gaps.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if gapsConfig.OutputFormat == "" {
			gapsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(gapsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runGaps,
}

var gapsConfig common.CommandConfig

func init() {
	gapsCmd.Flags().StringVarP(&gapsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	gapsCmd.Flags().StringVar(&gapsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	registerFormatCompletion(gapsCmd)
}

// newEmbedder creates the configured embedding provider
func newEmbedder(cfg *config.Config, logger *errors.Logger) (semantic.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "static":
		return semantic.NewStaticEmbedder(), nil
	default:
		return semantic.NewGeminiEmbedder(&cfg.Embedding, logger)
	}
}

func runGaps(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}
	gapsConfig.MaxFileSize = cfg.App.MaxFileSize

	embedder, err := newEmbedder(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}
	defer func() {
		if err := embedder.Close(); err != nil {
			logger.Warn("Failed to close embedding provider", "error", err)
		}
	}()

	analyzer := semantic.NewAnalyzer(embedder, cfg.Vocabulary, cfg.Engine.MaxEmbeddingChars)

	createInput := func(contents []string) (types.AnalyzeGapsInput, error) {
		if len(contents) != 2 {
			return types.AnalyzeGapsInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		if err := common.ValidateResumeText(contents[0]); err != nil {
			return types.AnalyzeGapsInput{}, err
		}
		if err := common.ValidateJobDescription(contents[1]); err != nil {
			return types.AnalyzeGapsInput{}, err
		}
		return types.AnalyzeGapsInput{
			ResumeText:     analysis.Truncate(contents[0], cfg.Engine.MaxInputChars),
			JobDescription: analysis.Truncate(contents[1], cfg.Engine.MaxInputChars),
		}, nil
	}

	logDetails := func(input types.AnalyzeGapsInput, cmdCfg common.CommandConfig) {
		logger.Info("Starting semantic gap analysis",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"embedding_provider", cfg.Embedding.Provider,
			"output_format", cmdCfg.OutputFormat)
	}

	gapsOperation := func(ctx context.Context, input types.AnalyzeGapsInput) (types.GapReport, error) {
		return analyzer.Analyze(ctx, input.ResumeText, input.JobDescription)
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		gapsConfig,
		args,
		createInput,
		gapsOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze gaps: %w", err)
	}
	logger.Info("Semantic gap analysis completed successfully")
	return nil
}
