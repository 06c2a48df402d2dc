package cli

import (
	"fmt"

	"resumelab/internal/common"
	"resumelab/internal/keywords"
	"resumelab/internal/suggest"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [resume-file]",
	Short: "Generate heuristic suggestions for a resume",
	Long: `Generate instant, deterministic suggestions for a resume without
calling any external service. The checks cover resume length, measurable
results, action verbs, role keyword coverage, and section-specific
improvements. The same resume and role always produce the same
suggestions.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if suggestConfig.OutputFormat == "" {
			suggestConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(suggestConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runSuggest,
}

var suggestConfig common.CommandConfig

var (
	suggestTargetRole string
	suggestTargetArea string
	suggestSection    string
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	suggestCmd.Flags().StringVar(&suggestConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	suggestCmd.Flags().StringVar(&suggestTargetRole, "role", "", "Target role for keyword coverage (e.g. 'software engineer')")
	suggestCmd.Flags().StringVar(&suggestTargetArea, "area", "", "Target area within the role")
	suggestCmd.Flags().StringVar(&suggestSection, "section", "", "Limit section-specific checks to one section (e.g. 'summary')")

	// Add completion for format flag
	_ = suggestCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	resumeText, err := fileProcessor.ReadResumeFile(args[0], cfg.App.MaxFileSize)
	if err != nil {
		return err
	}

	registry := keywords.NewRegistry()
	if cfg.Keywords.ProfileFile != "" {
		if err := registry.LoadFile(cfg.Keywords.ProfileFile); err != nil {
			return fmt.Errorf("failed to load keyword profiles: %w", err)
		}
	}

	engine := suggest.NewEngine(registry)

	logger.Info("Running heuristic suggestion checks",
		"resume_chars", len(resumeText),
		"target_role", suggestTargetRole,
		"output_format", suggestConfig.OutputFormat)

	suggestions := engine.Analyze(suggest.Input{
		ResumeText: resumeText,
		TargetRole: suggestTargetRole,
		TargetArea: suggestTargetArea,
		Section:    suggestSection,
	})

	logger.Info("Heuristic suggestion checks completed",
		"suggestions_count", len(suggestions))

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(suggestions, suggestConfig)
}
