package ai

import (
	"testing"

	"resumelab/internal/errors"
)

func TestNormalizeResumeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text passes through",
			input:    "JANE DOE\nSoftware Engineer",
			expected: "JANE DOE\nSoftware Engineer",
		},
		{
			name:     "strips bare code fence",
			input:    "```\nJANE DOE\nSoftware Engineer\n```",
			expected: "JANE DOE\nSoftware Engineer",
		},
		{
			name:     "strips fence with language tag",
			input:    "```text\nJANE DOE\n```",
			expected: "JANE DOE",
		},
		{
			name:     "strips leading resume label",
			input:    "Improved Resume:\nJANE DOE\nSoftware Engineer",
			expected: "JANE DOE\nSoftware Engineer",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "\n\n  JANE DOE  \n\n",
			expected: "JANE DOE",
		},
		{
			name:     "keeps inline fences untouched",
			input:    "Used ``go fmt`` daily",
			expected: "Used ``go fmt`` daily",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeResumeText(tt.input)
			if got != tt.expected {
				t.Errorf("normalizeResumeText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseAnalysisResult(t *testing.T) {
	valid := `{"overallScore": 80, "strengths": ["clear layout"], "improvements": [{"category": "content", "issue": "vague bullets", "suggestion": "add numbers", "priority": "high", "section": "experience"}], "missingKeywords": ["Python"], "enhancementAreas": ["experience"], "contentSuggestions": []}`

	t.Run("valid json", func(t *testing.T) {
		result, err := parseAnalysisResult(valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.OverallScore != 80 {
			t.Errorf("OverallScore = %d, want 80", result.OverallScore)
		}
		if len(result.Improvements) != 1 || result.Improvements[0].Priority != "high" {
			t.Errorf("unexpected improvements: %+v", result.Improvements)
		}
	})

	t.Run("fenced json", func(t *testing.T) {
		result, err := parseAnalysisResult("```json\n" + valid + "\n```")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.OverallScore != 80 {
			t.Errorf("OverallScore = %d, want 80", result.OverallScore)
		}
	})

	malformed := []struct {
		name  string
		input string
	}{
		{"prose instead of json", "The resume looks good overall."},
		{"truncated json", `{"overallScore": 80, "strengths": [`},
		{"score out of range", `{"overallScore": 150}`},
		{"negative score", `{"overallScore": -3}`},
		{"empty improvement entry", `{"overallScore": 50, "improvements": [{"category": "content"}]}`},
	}

	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAnalysisResult(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.IsMalformedResponse(err) {
				t.Errorf("expected MALFORMED_AI_RESPONSE, got %v", err)
			}
		})
	}
}
