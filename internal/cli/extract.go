package cli

import (
	"encoding/json"
	"fmt"

	"resumelab/internal/common"
	"resumelab/internal/extract"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [resume-file]",
	Short: "Extract plain text from a resume file",
	Long: `Extract plain text from a resume file. PDF files go through the
PDF parser; other files are read as UTF-8 text. The default output is
the extracted text itself; use --format json to also get the detected
resume sections.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if extractConfig.OutputFormat == "" {
			extractConfig.OutputFormat = "text"
		}
		switch extractConfig.OutputFormat {
		case "text", "json":
			return nil
		default:
			return fmt.Errorf("unsupported output format '%s' for extract. Supported formats: [text json]", extractConfig.OutputFormat)
		}
	},
	RunE: runExtract,
}

var extractConfig common.CommandConfig

func init() {
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format: text or json")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	text, err := fileProcessor.ReadResumeFile(args[0], cfg.App.MaxFileSize)
	if err != nil {
		return err
	}

	logger.Info("Resume text extracted",
		"file", args[0],
		"characters", len(text))

	output := text + "\n"
	if extractConfig.OutputFormat == "json" {
		payload := map[string]any{
			"text":       text,
			"sections":   extract.Sections(text),
			"characters": len(text),
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode extraction result: %w", err)
		}
		output = string(data) + "\n"
	}

	if extractConfig.OutputFile != "" {
		return fileProcessor.WriteFile(extractConfig.OutputFile, output)
	}

	fmt.Print(output)
	return nil
}
