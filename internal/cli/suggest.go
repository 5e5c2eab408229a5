package cli

import (
	"context"
	"fmt"

	"resumetric/internal/analysis"
	"resumetric/internal/common"
	"resumetric/internal/types"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [resume-file] [job-description-file]",
	Short: "Generate improvement suggestions for a resume",
	Long: `Generate concrete improvement suggestions for a resume in the
context of a job description: critical fixes, skill gap closures, bullet
rewrites, grammar tips, and section structure advice. Every category
produces at least one deterministic suggestion.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if suggestConfig.OutputFormat == "" {
			suggestConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(suggestConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runSuggest,
}

var suggestConfig common.CommandConfig

func init() {
	suggestCmd.Flags().StringVarP(&suggestConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	suggestCmd.Flags().StringVar(&suggestConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	registerFormatCompletion(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}
	suggestConfig.MaxFileSize = cfg.App.MaxFileSize

	advisor := analysis.NewAdvisor(cfg.Vocabulary)

	createInput := func(contents []string) (types.SuggestInput, error) {
		if len(contents) != 2 {
			return types.SuggestInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		if err := common.ValidateResumeText(contents[0]); err != nil {
			return types.SuggestInput{}, err
		}
		if err := common.ValidateJobDescription(contents[1]); err != nil {
			return types.SuggestInput{}, err
		}
		return types.SuggestInput{
			ResumeText:     analysis.Truncate(contents[0], cfg.Engine.MaxInputChars),
			JobDescription: analysis.Truncate(contents[1], cfg.Engine.MaxInputChars),
		}, nil
	}

	logDetails := func(input types.SuggestInput, cmdCfg common.CommandConfig) {
		logger.Info("Starting improvement suggestion generation",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cmdCfg.OutputFormat)
	}

	suggestOperation := func(ctx context.Context, input types.SuggestInput) (types.ImprovementReport, error) {
		return advisor.Suggest(input.ResumeText, input.JobDescription), nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		suggestConfig,
		args,
		createInput,
		suggestOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate suggestions: %w", err)
	}
	logger.Info("Improvement suggestion generation completed successfully")
	return nil
}
