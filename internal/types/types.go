package types

import "time"

// SuggestionType categorizes what kind of change a suggestion recommends
type SuggestionType string

const (
	SuggestionContent   SuggestionType = "content"
	SuggestionFormat    SuggestionType = "format"
	SuggestionKeyword   SuggestionType = "keyword"
	SuggestionStructure SuggestionType = "structure"
)

// Priority is an ordering/severity signal for a suggestion, not a score
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion is one actionable, human-readable recommendation for
// improving resume text. Suggestions are created fresh on every analysis
// run; ids are stable within a run and may repeat across runs since each
// run replaces the previous set. The engine never sets Applied — that is
// mutated by the consumer when the user accepts the suggestion.
type Suggestion struct {
	ID             string         `json:"id"`
	Type           SuggestionType `json:"type"`
	Section        string         `json:"section"`
	Priority       Priority       `json:"priority"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	SuggestionText string         `json:"suggestionText"`
	Applied        bool           `json:"applied"`
}

// ImproveAction discriminates the two improvement modes
type ImproveAction string

const (
	ActionAutoImprove ImproveAction = "auto-improve"
	ActionChatCommand ImproveAction = "chat-command"
)

// ImproveResumeInput represents the input for an AI resume improvement
type ImproveResumeInput struct {
	ResumeText string        `json:"resumeText"`
	TargetRole string        `json:"targetRole"`
	TargetArea string        `json:"targetArea,omitempty"`
	Action     ImproveAction `json:"action"`
	Command    string        `json:"command,omitempty"` // chat-command only
}

// ImproveResumeOutput represents the normalized output of an improvement
type ImproveResumeOutput struct {
	ImprovedText string `json:"improvedText"`
	Message      string `json:"message"`
}

// AnalyzeResumeInput represents the input for an AI resume analysis
type AnalyzeResumeInput struct {
	ResumeText string `json:"resumeText"`
	TargetRole string `json:"targetRole"`
	TargetArea string `json:"targetArea,omitempty"`
}

// AnalysisImprovement is one scored issue reported by the analysis
type AnalysisImprovement struct {
	Category   string `json:"category"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
	Section    string `json:"section"`
}

// ContentSuggestion is a concrete rewrite proposal for one section
type ContentSuggestion struct {
	Section       string `json:"section"`
	CurrentText   string `json:"currentText"`
	SuggestedText string `json:"suggestedText"`
	Reason        string `json:"reason"`
}

// AnalysisResult is the structured record returned by the analyze
// operation. The shape is dictated to the external AI service via prompt
// instructions only, so it is untrusted until validated.
type AnalysisResult struct {
	OverallScore       int                   `json:"overallScore"`
	Strengths          []string              `json:"strengths"`
	Improvements       []AnalysisImprovement `json:"improvements"`
	MissingKeywords    []string              `json:"missingKeywords"`
	EnhancementAreas   []string              `json:"enhancementAreas"`
	ContentSuggestions []ContentSuggestion   `json:"contentSuggestions"`
}

// ResumeRecord is a stored resume with its extraction/edit state
type ResumeRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Text       string    `json:"text"`
	TargetRole string    `json:"targetRole,omitempty"`
	TargetArea string    `json:"targetArea,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
