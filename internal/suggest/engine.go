// Package suggest implements the heuristic resume suggestion engine:
// pure, synchronous checks of resume text against a target role. No
// I/O, no external calls; the same inputs always produce the same
// suggestion set.
package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"resumelab/internal/keywords"
	"resumelab/internal/types"
)

const (
	// minWordCount is the whitespace-token threshold below which a
	// resume is considered too short.
	minWordCount = 200

	// minSummaryLength is the character threshold below which a
	// summary section is considered too thin.
	minSummaryLength = 100

	// maxMissingKeywords caps how many missing keywords a single
	// suggestion lists.
	maxMissingKeywords = 5
)

var quantifyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\d+\+`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`(?i)\b(increased|improved|reduced)\b`),
}

var actionVerbPattern = regexp.MustCompile(`(?i)\b(led|managed|developed|created|implemented|designed|optimized)\b`)

// Input carries everything one analysis run looks at.
type Input struct {
	ResumeText string
	TargetRole string
	TargetArea string
	// Section, when set, enables the section-specific checks for that
	// section of the resume (e.g. "summary", "skills").
	Section string
}

// Engine runs the heuristic checks. It is stateless apart from the
// keyword registry it resolves role profiles from, and safe for
// concurrent use.
type Engine struct {
	profiles *keywords.Registry
}

func NewEngine(profiles *keywords.Registry) *Engine {
	return &Engine{profiles: profiles}
}

// Analyze runs every applicable check and returns the resulting
// suggestions. Each check emits at most one suggestion; the order of
// the returned slice is the fixed check order, and callers are free to
// reorder for display. Analyze never fails: degenerate input just
// produces fewer suggestions.
func (e *Engine) Analyze(in Input) []types.Suggestion {
	var out []types.Suggestion

	if s := checkWordCount(in.ResumeText); s != nil {
		out = append(out, *s)
	}
	if s := checkQuantification(in.ResumeText); s != nil {
		out = append(out, *s)
	}
	if s := checkActionVerbs(in.ResumeText); s != nil {
		out = append(out, *s)
	}
	if s := e.checkKeywordGap(in.ResumeText, in.TargetRole); s != nil {
		out = append(out, *s)
	}
	if s := checkSection(in.ResumeText, in.TargetRole, in.Section); s != nil {
		out = append(out, *s)
	}

	return out
}

func checkWordCount(text string) *types.Suggestion {
	if len(strings.Fields(text)) >= minWordCount {
		return nil
	}
	return &types.Suggestion{
		ID:          "word-count",
		Type:        types.SuggestionContent,
		Section:     "overall",
		Priority:    types.PriorityHigh,
		Title:       "Expand your resume content",
		Description: fmt.Sprintf("Your resume has fewer than %d words, which may under-represent your experience.", minWordCount),
		SuggestionText: "Add more detail about your accomplishments, responsibilities, and the impact of your work " +
			"in each role.",
	}
}

func checkQuantification(text string) *types.Suggestion {
	for _, pattern := range quantifyPatterns {
		if pattern.MatchString(text) {
			return nil
		}
	}
	return &types.Suggestion{
		ID:          "quantify",
		Type:        types.SuggestionContent,
		Section:     "experience",
		Priority:    types.PriorityHigh,
		Title:       "Quantify your achievements",
		Description: "Your resume contains no measurable results such as percentages, dollar amounts, or growth figures.",
		SuggestionText: "Rewrite accomplishment bullets with concrete numbers, e.g. \"increased revenue by 25%\" or " +
			"\"reduced processing time by 3 hours\".",
	}
}

func checkActionVerbs(text string) *types.Suggestion {
	if actionVerbPattern.MatchString(text) {
		return nil
	}
	return &types.Suggestion{
		ID:          "action-verbs",
		Type:        types.SuggestionContent,
		Section:     "experience",
		Priority:    types.PriorityMedium,
		Title:       "Use strong action verbs",
		Description: "Your resume does not use strong action verbs such as led, managed, developed, or implemented.",
		SuggestionText: "Start each bullet with a decisive verb: led, managed, developed, created, implemented, " +
			"designed, optimized.",
	}
}

func (e *Engine) checkKeywordGap(text, role string) *types.Suggestion {
	profile := e.profiles.ProfileFor(role)
	if len(profile) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	var missing []string
	for _, kw := range profile {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			missing = append(missing, kw)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if len(missing) > maxMissingKeywords {
		missing = missing[:maxMissingKeywords]
	}

	return &types.Suggestion{
		ID:          "keywords",
		Type:        types.SuggestionKeyword,
		Section:     "overall",
		Priority:    types.PriorityHigh,
		Title:       "Add role-relevant keywords",
		Description: fmt.Sprintf("Your resume is missing keywords commonly expected for %q roles.", role),
		SuggestionText: fmt.Sprintf("Consider mentioning: %s. Applicant tracking systems screen for these terms.",
			strings.Join(missing, ", ")),
	}
}

func checkSection(text, role, section string) *types.Suggestion {
	switch strings.ToLower(strings.TrimSpace(section)) {
	case "summary", "professional-summary":
		if len(text) >= minSummaryLength {
			return nil
		}
		return &types.Suggestion{
			ID:          "summary-expand",
			Type:        types.SuggestionContent,
			Section:     section,
			Priority:    types.PriorityHigh,
			Title:       "Expand your professional summary",
			Description: "Your summary is very short and does not give a recruiter enough context.",
			SuggestionText: fmt.Sprintf("Write 2-3 sentences covering your experience level, key strengths, and why "+
				"you fit a %s role.", displayRole(role)),
		}
	case "skills", "technical-skills":
		if strings.ContainsAny(text, "•-") {
			return nil
		}
		return &types.Suggestion{
			ID:          "skills-format",
			Type:        types.SuggestionFormat,
			Section:     section,
			Priority:    types.PriorityMedium,
			Title:       "Format skills as a list",
			Description: "Your skills section is not structured as a scannable list.",
			SuggestionText: "Break skills into bullet points or a hyphen-separated list so recruiters and parsers can " +
				"pick them out quickly.",
		}
	default:
		return nil
	}
}

func displayRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return "your target"
	}
	return role
}
