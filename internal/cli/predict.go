package cli

import (
	"context"
	"fmt"

	"resumetric/internal/analysis"
	"resumetric/internal/common"
	"resumetric/internal/ml"
	"resumetric/internal/types"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict [resume-file]",
	Short: "Predict a resume score with the learned model",
	Long: `Predict an overall resume score with the learned linear model.
The model is distilled offline from the rule-based composite score and
loaded from a versioned JSON artifact at startup.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if predictConfig.OutputFormat == "" {
			predictConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(predictConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runPredict,
}

var predictConfig common.CommandConfig

func init() {
	predictCmd.Flags().StringVarP(&predictConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	predictCmd.Flags().StringVar(&predictConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	registerFormatCompletion(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}
	predictConfig.MaxFileSize = cfg.App.MaxFileSize

	extractor := analysis.NewExtractor(cfg.Vocabulary)
	predictor, err := ml.NewPredictor(cfg.Model.Path, extractor, logger)
	if err != nil {
		return fmt.Errorf("failed to load score model: %w", err)
	}

	createInput := func(contents []string) (types.PredictScoreInput, error) {
		if len(contents) != 1 {
			return types.PredictScoreInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		if err := common.ValidateResumeText(contents[0]); err != nil {
			return types.PredictScoreInput{}, err
		}
		return types.PredictScoreInput{
			ResumeText: analysis.Truncate(contents[0], cfg.Engine.MaxInputChars),
		}, nil
	}

	logDetails := func(input types.PredictScoreInput, cmdCfg common.CommandConfig) {
		logger.Info("Starting score prediction",
			"resume_chars", len(input.ResumeText),
			"model_version", predictor.Version(),
			"output_format", cmdCfg.OutputFormat)
	}

	predictOperation := func(ctx context.Context, input types.PredictScoreInput) (types.PredictedScore, error) {
		return predictor.Predict(input.ResumeText), nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		predictConfig,
		args,
		createInput,
		predictOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to predict score: %w", err)
	}
	logger.Info("Score prediction completed successfully")
	return nil
}
