package cli

import (
	"context"
	"fmt"

	"resumetric/internal/analysis"
	"resumetric/internal/common"
	"resumetric/internal/types"

	"github.com/spf13/cobra"
)

var qualityCmd = &cobra.Command{
	Use:   "quality [resume-file]",
	Short: "Score the standalone quality of a resume",
	Long: `Score a resume's standalone quality without reference to any job
description. The composite score weighs section completeness, grammar
quality, bullet point quality, skill structure, and formatting, and is
accompanied by a human-readable interpretation.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if qualityConfig.OutputFormat == "" {
			qualityConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(qualityConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runQuality,
}

var qualityConfig common.CommandConfig

func init() {
	qualityCmd.Flags().StringVarP(&qualityConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	qualityCmd.Flags().StringVar(&qualityConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	registerFormatCompletion(qualityCmd)
}

func runQuality(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}
	qualityConfig.MaxFileSize = cfg.App.MaxFileSize

	scorer := analysis.NewQualityScorer(cfg.Vocabulary)

	createInput := func(contents []string) (types.ScoreQualityInput, error) {
		if len(contents) != 1 {
			return types.ScoreQualityInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		if err := common.ValidateResumeText(contents[0]); err != nil {
			return types.ScoreQualityInput{}, err
		}
		return types.ScoreQualityInput{
			ResumeText: analysis.Truncate(contents[0], cfg.Engine.MaxInputChars),
		}, nil
	}

	logDetails := func(input types.ScoreQualityInput, cmdCfg common.CommandConfig) {
		logger.Info("Starting resume quality scoring",
			"resume_chars", len(input.ResumeText),
			"output_format", cmdCfg.OutputFormat)
	}

	qualityOperation := func(ctx context.Context, input types.ScoreQualityInput) (types.QualityReport, error) {
		return scorer.Score(input.ResumeText), nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		qualityConfig,
		args,
		createInput,
		qualityOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume quality: %w", err)
	}
	logger.Info("Resume quality scoring completed successfully")
	return nil
}
