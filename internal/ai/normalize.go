package ai

import (
	"encoding/json"
	"strings"

	resumelabErrors "resumelab/internal/errors"
	"resumelab/internal/types"
)

// normalizeResumeText cleans up raw model output before it is returned
// to callers: code fences are stripped, a leading label line such as
// "Resume:" is dropped, and surrounding whitespace is trimmed.
func normalizeResumeText(text string) string {
	text = stripCodeFences(text)
	text = stripLeadingLabel(text)
	return strings.TrimSpace(text)
}

// stripCodeFences removes a wrapping markdown code fence, including
// fences with a language tag like ```json or ```text.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return text
	}

	// Drop the opening fence line (``` plus optional language tag).
	lines = lines[1:]

	// Drop the closing fence if present.
	last := len(lines) - 1
	if strings.TrimSpace(lines[last]) == "```" {
		lines = lines[:last]
	}

	return strings.Join(lines, "\n")
}

var leadingLabels = []string{
	"resume:",
	"text:",
	"content:",
	"improved resume:",
}

// stripLeadingLabel drops a first line that is only a label the model
// sometimes prepends, e.g. "Improved Resume:".
func stripLeadingLabel(text string) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	firstLineEnd := strings.Index(trimmed, "\n")
	if firstLineEnd < 0 {
		return text
	}

	firstLine := strings.ToLower(strings.TrimSpace(trimmed[:firstLineEnd]))
	for _, label := range leadingLabels {
		if firstLine == label {
			return trimmed[firstLineEnd+1:]
		}
	}
	return text
}

// parseAnalysisResult parses a model response into an AnalysisResult.
// Code fences around the JSON payload are tolerated; anything that does
// not parse into the expected shape is a MALFORMED_AI_RESPONSE.
func parseAnalysisResult(text string) (*types.AnalysisResult, error) {
	cleaned := strings.TrimSpace(stripCodeFences(text))

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, resumelabErrors.NewAIError(resumelabErrors.ErrCodeMalformedResponse,
			"AI response is not valid analysis JSON", err)
	}

	if err := validateAnalysisResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func validateAnalysisResult(result *types.AnalysisResult) error {
	if result.OverallScore < 0 || result.OverallScore > 100 {
		return resumelabErrors.NewAIError(resumelabErrors.ErrCodeMalformedResponse,
			"AI response has an out-of-range overall score", nil).
			WithContext("overall_score", result.OverallScore)
	}

	for i, improvement := range result.Improvements {
		if improvement.Issue == "" && improvement.Suggestion == "" {
			return resumelabErrors.NewAIError(resumelabErrors.ErrCodeMalformedResponse,
				"AI response contains an empty improvement entry", nil).
				WithContext("index", i)
		}
	}

	return nil
}
