package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	ImproveResume string
	AnalyzeResume string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	AutoImprove   string
	ChatCommand   string
	AnalyzeResume string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	ImproveResume: `You are an expert resume writer with a strict commitment to honesty and accuracy. Your core principles are:

- NEVER invent, exaggerate, or misattribute any skills or experiences
- Every piece of information must be directly traceable to the source material
- Maintain professional integrity while optimizing for relevance and impact

Your expertise includes:
- Resume structure and professional tone
- ATS (Applicant Tracking System) keyword optimization
- Action-oriented, quantified accomplishment writing`,

	AnalyzeResume: `You are an expert resume reviewer and career coach with deep knowledge of:

- Resume quality assessment and scoring
- ATS keyword coverage for specific roles
- Industry expectations for different seniority levels

Your role is to analyze resumes honestly and return structured, actionable findings. You always respond with exactly the JSON shape you are asked for, and nothing else.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	AutoImprove: `Please rewrite the following resume for a %s position%s.

**Improvement goals:**

1. **Structure**: Organize content into clear, well-ordered sections.
2. **Professional tone**: Use confident, concise professional language throughout.
3. **ATS keyword optimization**: Incorporate keywords relevant to the target role, but only where the underlying skill or experience already exists in the resume.
4. **Action-oriented bullets**: Start accomplishment bullets with strong action verbs and quantify results where the source material supports it.
5. **Consistent formatting**: Apply consistent date formats, bullet styles, and capitalization.
6. **Information preservation**: Keep every factual claim from the original; do not invent or drop experience.

Return ONLY the revised resume as plain text. Do not add commentary, explanations, or code fences.

**Resume:**
-----
%s
-----`,

	ChatCommand: `Apply the following instruction to the resume below: %s

Make only the changes the instruction asks for and keep the rest of the resume intact.

Return ONLY the revised resume as plain text. Do not add commentary, explanations, or code fences.

**Resume:**
-----
%s
-----`,

	AnalyzeResume: `Please analyze the following resume for a %s position%s.

Return ONLY a JSON object with exactly this shape and no surrounding prose:

{
  "overallScore": <integer 0-100>,
  "strengths": [<string>, ...],
  "improvements": [
    {"category": <string>, "issue": <string>, "suggestion": <string>, "priority": "high"|"medium"|"low", "section": <string>},
    ...
  ],
  "missingKeywords": [<string>, ...],
  "enhancementAreas": [<string>, ...],
  "contentSuggestions": [
    {"section": <string>, "currentText": <string>, "suggestedText": <string>, "reason": <string>},
    ...
  ]
}

**Resume:**
-----
%s
-----`,
}
