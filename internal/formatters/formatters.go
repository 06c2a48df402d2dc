package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelab/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ImproveResumeOutput", &ImproveTextFormatter{})
	registry.RegisterFormatter("markdown", "ImproveResumeOutput", &ImproveMarkdownFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "Suggestions", &SuggestionsTextFormatter{})
	registry.RegisterFormatter("markdown", "Suggestions", &SuggestionsMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ImproveResumeOutput:
		return "ImproveResumeOutput"
	case types.AnalysisResult, *types.AnalysisResult:
		return "AnalysisResult"
	case []types.Suggestion:
		return "Suggestions"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ImproveTextFormatter handles text formatting for improve results
type ImproveTextFormatter struct{}

func (itf *ImproveTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ImproveResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected ImproveResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== IMPROVED RESUME ===\n\n")
	output.WriteString(result.ImprovedText)
	output.WriteString("\n")

	if result.Message != "" {
		output.WriteString("\n")
		output.WriteString(result.Message)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (itf *ImproveTextFormatter) SupportedType() string {
	return "ImproveResumeOutput"
}

// ImproveMarkdownFormatter handles markdown formatting for improve results
type ImproveMarkdownFormatter struct{}

func (imf *ImproveMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ImproveResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected ImproveResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Improved Resume\n\n")
	output.WriteString(result.ImprovedText)
	output.WriteString("\n")

	if result.Message != "" {
		output.WriteString("\n> ")
		output.WriteString(result.Message)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (imf *ImproveMarkdownFormatter) SupportedType() string {
	return "ImproveResumeOutput"
}

// AnalysisTextFormatter handles text formatting for analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, err := toAnalysisResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n\n", result.OverallScore))

	if len(result.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.Improvements) > 0 {
		output.WriteString("=== IMPROVEMENTS ===\n\n")
		for i, improvement := range result.Improvements {
			output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, improvement.Priority, improvement.Issue))
			output.WriteString("   Suggestion: ")
			output.WriteString(improvement.Suggestion)
			output.WriteString("\n")
			if improvement.Section != "" {
				output.WriteString(fmt.Sprintf("   Section: %s\n", improvement.Section))
			}
			output.WriteString("\n")
		}
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("Missing Keywords:\n")
		for _, keyword := range result.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if len(result.EnhancementAreas) > 0 {
		output.WriteString("Enhancement Areas:\n")
		for _, area := range result.EnhancementAreas {
			output.WriteString(fmt.Sprintf("- %s\n", area))
		}
		output.WriteString("\n")
	}

	if len(result.ContentSuggestions) > 0 {
		output.WriteString("=== CONTENT SUGGESTIONS ===\n\n")
		for i, suggestion := range result.ContentSuggestions {
			output.WriteString(fmt.Sprintf("%d. Section: %s\n", i+1, suggestion.Section))
			output.WriteString("   Suggested: ")
			output.WriteString(suggestion.SuggestedText)
			output.WriteString("\n")
			output.WriteString("   Reason: ")
			output.WriteString(suggestion.Reason)
			output.WriteString("\n\n")
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, err := toAnalysisResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.OverallScore))

	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.Improvements) > 0 {
		output.WriteString("## Improvements\n\n")
		for i, improvement := range result.Improvements {
			output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, improvement.Issue))
			output.WriteString(fmt.Sprintf("**Priority:** %s\n\n", improvement.Priority))
			output.WriteString("**Suggestion:** ")
			output.WriteString(improvement.Suggestion)
			output.WriteString("\n\n")
			if improvement.Section != "" {
				output.WriteString(fmt.Sprintf("**Section:** %s\n\n", improvement.Section))
			}
		}
	}

	if len(result.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n\n")
		for _, keyword := range result.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if len(result.EnhancementAreas) > 0 {
		output.WriteString("## Enhancement Areas\n\n")
		for _, area := range result.EnhancementAreas {
			output.WriteString(fmt.Sprintf("- %s\n", area))
		}
		output.WriteString("\n")
	}

	if len(result.ContentSuggestions) > 0 {
		output.WriteString("## Content Suggestions\n\n")
		for i, suggestion := range result.ContentSuggestions {
			output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, suggestion.Section))
			output.WriteString("**Suggested:** ")
			output.WriteString(suggestion.SuggestedText)
			output.WriteString("\n\n")
			output.WriteString("**Reason:** ")
			output.WriteString(suggestion.Reason)
			output.WriteString("\n\n")
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// SuggestionsTextFormatter handles text formatting for heuristic suggestions
type SuggestionsTextFormatter struct{}

func (stf *SuggestionsTextFormatter) Format(data any) (string, error) {
	suggestions, ok := data.([]types.Suggestion)
	if !ok {
		return "", fmt.Errorf("expected []Suggestion, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SUGGESTIONS ===\n\n")
	if len(suggestions) == 0 {
		output.WriteString("No suggestions.\n")
		return output.String(), nil
	}

	for i, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, suggestion.Priority, suggestion.Title))
		output.WriteString("   ")
		output.WriteString(suggestion.Description)
		output.WriteString("\n")
		if suggestion.SuggestionText != "" {
			output.WriteString("   ")
			output.WriteString(suggestion.SuggestionText)
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (stf *SuggestionsTextFormatter) SupportedType() string {
	return "Suggestions"
}

// SuggestionsMarkdownFormatter handles markdown formatting for heuristic suggestions
type SuggestionsMarkdownFormatter struct{}

func (smf *SuggestionsMarkdownFormatter) Format(data any) (string, error) {
	suggestions, ok := data.([]types.Suggestion)
	if !ok {
		return "", fmt.Errorf("expected []Suggestion, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Suggestions\n\n")
	if len(suggestions) == 0 {
		output.WriteString("No suggestions.\n")
		return output.String(), nil
	}

	for i, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, suggestion.Title))
		output.WriteString(fmt.Sprintf("**Priority:** %s | **Type:** %s\n\n", suggestion.Priority, suggestion.Type))
		output.WriteString(suggestion.Description)
		output.WriteString("\n\n")
		if suggestion.SuggestionText != "" {
			output.WriteString("> ")
			output.WriteString(suggestion.SuggestionText)
			output.WriteString("\n\n")
		}
	}

	return output.String(), nil
}

func (smf *SuggestionsMarkdownFormatter) SupportedType() string {
	return "Suggestions"
}

func toAnalysisResult(data any) (types.AnalysisResult, error) {
	switch v := data.(type) {
	case types.AnalysisResult:
		return v, nil
	case *types.AnalysisResult:
		if v == nil {
			return types.AnalysisResult{}, fmt.Errorf("nil AnalysisResult")
		}
		return *v, nil
	default:
		return types.AnalysisResult{}, fmt.Errorf("expected AnalysisResult, got %T", data)
	}
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
