package cli

import (
	"context"
	"fmt"

	"resumetric/internal/analysis"
	"resumetric/internal/common"
	"resumetric/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Match a resume against a job description",
	Long: `Match a resume against a job description using lexical analysis.
The ATS-style score combines skill overlap, project relevance, and TF-IDF
experience similarity, and reports matched, missing, and extra skills.
Extra skills are treated as strengths, not penalties.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	registerFormatCompletion(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}
	matchConfig.MaxFileSize = cfg.App.MaxFileSize

	matcher := analysis.NewMatcher(cfg.Vocabulary, cfg.Engine.TFIDFMaxFeatures)

	createInput := func(contents []string) (types.MatchResumeInput, error) {
		if len(contents) != 2 {
			return types.MatchResumeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		if err := common.ValidateResumeText(contents[0]); err != nil {
			return types.MatchResumeInput{}, err
		}
		if err := common.ValidateJobDescription(contents[1]); err != nil {
			return types.MatchResumeInput{}, err
		}
		return types.MatchResumeInput{
			ResumeText:     analysis.Truncate(contents[0], cfg.Engine.MaxInputChars),
			JobDescription: analysis.Truncate(contents[1], cfg.Engine.MaxInputChars),
		}, nil
	}

	logDetails := func(input types.MatchResumeInput, cmdCfg common.CommandConfig) {
		logger.Info("Starting resume-to-JD matching",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cmdCfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input types.MatchResumeInput) (types.MatchReport, error) {
		return matcher.Match(input.ResumeText, input.JobDescription), nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		createInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Resume matching completed successfully")
	return nil
}
