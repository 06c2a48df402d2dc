package cli

import (
	"fmt"

	"resumelab/internal/ai"
	"resumelab/internal/common"
	"resumelab/internal/types"

	"github.com/spf13/cobra"
)

var improveCmd = &cobra.Command{
	Use:   "improve [resume-file]",
	Short: "Improve a resume using AI",
	Long: `Improve your resume using AI. The command takes the path to your
resume file (plain text, markdown, or PDF) and rewrites it for stronger
impact. By default the whole resume is improved automatically; pass
--command to apply a single literal instruction instead.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if improveConfig.OutputFormat == "" {
			improveConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(improveConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runImprove,
}

var improveConfig common.CommandConfig

var (
	improveTargetRole string
	improveTargetArea string
	improveCommand    string
)

func init() {
	improveCmd.Flags().StringVarP(&improveConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	improveCmd.Flags().StringVar(&improveConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	improveCmd.Flags().StringVar(&improveTargetRole, "role", "", "Target role to improve for (e.g. 'software engineer')")
	improveCmd.Flags().StringVar(&improveTargetArea, "area", "", "Target area within the role (e.g. 'backend')")
	improveCmd.Flags().StringVar(&improveCommand, "command", "", "Literal improvement instruction (switches to chat-command mode)")

	// Add completion for format flag
	_ = improveCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runImprove(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for improve operation
	improveAIConfig := cfg.GetImproveConfig()
	aiService, err := ai.NewService(&improveAIConfig, "improve", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	action := types.ActionAutoImprove
	if improveCommand != "" {
		action = types.ActionChatCommand
	}

	createInput := func(resumeText string) (types.ImproveResumeInput, error) {
		return types.ImproveResumeInput{
			ResumeText: resumeText,
			TargetRole: improveTargetRole,
			TargetArea: improveTargetArea,
			Action:     action,
			Command:    improveCommand,
		}, nil
	}

	logDetails := func(input types.ImproveResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume improvement",
			"resume_chars", len(input.ResumeText),
			"action", string(input.Action),
			"target_role", input.TargetRole,
			"output_format", cfg.OutputFormat)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		improveConfig,
		args[0],
		cfg.App.MaxFileSize,
		createInput,
		aiService.ImproveResume,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to improve resume: %w", err)
	}
	logger.Info("Resume improvement completed successfully")
	return nil
}
