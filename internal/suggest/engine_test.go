package suggest

import (
	"strings"
	"testing"

	"resumelab/internal/keywords"
	"resumelab/internal/types"
)

func newTestEngine() *Engine {
	return NewEngine(keywords.NewRegistry())
}

func countByID(suggestions []types.Suggestion, id string) int {
	n := 0
	for _, s := range suggestions {
		if s.ID == id {
			n++
		}
	}
	return n
}

func findByID(suggestions []types.Suggestion, id string) (types.Suggestion, bool) {
	for _, s := range suggestions {
		if s.ID == id {
			return s, true
		}
	}
	return types.Suggestion{}, false
}

// longResumeText builds a resume comfortably over the word threshold.
func longResumeText() string {
	return strings.Repeat("word ", 250)
}

func TestAnalyzeWordCount(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name       string
		resumeText string
		want       int
	}{
		{
			name:       "empty text",
			resumeText: "",
			want:       1,
		},
		{
			name:       "short text",
			resumeText: "Experienced engineer with a background in distributed systems.",
			want:       1,
		},
		{
			name:       "just under threshold",
			resumeText: strings.Repeat("word ", 199),
			want:       1,
		},
		{
			name:       "at threshold",
			resumeText: strings.Repeat("word ", 200),
			want:       0,
		},
		{
			name:       "long text",
			resumeText: longResumeText(),
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Analyze(Input{ResumeText: tt.resumeText})
			if n := countByID(got, "word-count"); n != tt.want {
				t.Errorf("got %d word-count suggestions, want %d", n, tt.want)
			}
		})
	}
}

func TestAnalyzeQuantification(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name       string
		resumeText string
		wantIssue  bool
	}{
		{
			name:       "no quantification",
			resumeText: "Responsible for team projects and daily operations.",
			wantIssue:  true,
		},
		{
			name:       "percentage present",
			resumeText: "Grew user base by 40% year over year.",
			wantIssue:  false,
		},
		{
			name:       "plus-suffixed number present",
			resumeText: "Supported 100+ enterprise customers.",
			wantIssue:  false,
		},
		{
			name:       "dollar amount present",
			resumeText: "Managed a $500000 annual budget.",
			wantIssue:  false,
		},
		{
			name:       "impact verb present",
			resumeText: "Reduced deployment times through automation.",
			wantIssue:  false,
		},
		{
			name:       "impact verb case-insensitive",
			resumeText: "IMPROVED onboarding flows across three products.",
			wantIssue:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Analyze(Input{ResumeText: tt.resumeText})
			n := countByID(got, "quantify")
			if tt.wantIssue && n != 1 {
				t.Errorf("got %d quantify suggestions, want exactly 1", n)
			}
			if !tt.wantIssue && n != 0 {
				t.Errorf("got %d quantify suggestions, want 0", n)
			}
		})
	}
}

func TestAnalyzeActionVerbs(t *testing.T) {
	engine := newTestEngine()

	got := engine.Analyze(Input{ResumeText: "Was responsible for various tasks."})
	if n := countByID(got, "action-verbs"); n != 1 {
		t.Errorf("got %d action-verbs suggestions, want 1", n)
	}

	got = engine.Analyze(Input{ResumeText: "Led a team of five engineers."})
	if n := countByID(got, "action-verbs"); n != 0 {
		t.Errorf("got %d action-verbs suggestions, want 0", n)
	}
}

func TestAnalyzeKeywordGap(t *testing.T) {
	engine := newTestEngine()

	t.Run("software engineer missing all keywords", func(t *testing.T) {
		got := engine.Analyze(Input{
			ResumeText: "Seasoned professional with broad industry experience.",
			TargetRole: "software engineer",
		})

		s, ok := findByID(got, "keywords")
		if !ok {
			t.Fatal("expected a keywords suggestion")
		}
		if s.Type != types.SuggestionKeyword || s.Priority != types.PriorityHigh {
			t.Errorf("unexpected type/priority: %s/%s", s.Type, s.Priority)
		}

		// At most 5 terms, in profile order.
		wantOrder := []string{"JavaScript", "Python", "React", "Node.js", "API"}
		lastIdx := -1
		for _, kw := range wantOrder {
			idx := strings.Index(s.SuggestionText, kw)
			if idx < 0 {
				t.Errorf("suggestion text missing keyword %q: %s", kw, s.SuggestionText)
				continue
			}
			if idx < lastIdx {
				t.Errorf("keyword %q out of profile order in: %s", kw, s.SuggestionText)
			}
			lastIdx = idx
		}
		for _, extra := range []string{"Git", "Agile"} {
			if strings.Contains(s.SuggestionText, extra) {
				t.Errorf("suggestion lists more than 5 keywords, found %q: %s", extra, s.SuggestionText)
			}
		}
	})

	t.Run("unknown role falls back to default profile", func(t *testing.T) {
		got := engine.Analyze(Input{
			ResumeText: "Short resume with no notable terms.",
			TargetRole: "underwater basket weaver",
		})

		s, ok := findByID(got, "keywords")
		if !ok {
			t.Fatal("expected a keywords suggestion for unknown role")
		}
		for _, kw := range []string{"Leadership", "Problem Solving", "Communication", "Teamwork", "Project Management"} {
			if !strings.Contains(s.SuggestionText, kw) {
				t.Errorf("default-profile keyword %q missing from: %s", kw, s.SuggestionText)
			}
		}
	})

	t.Run("empty role disables keyword check", func(t *testing.T) {
		got := engine.Analyze(Input{ResumeText: "Anything at all."})
		if n := countByID(got, "keywords"); n != 0 {
			t.Errorf("got %d keywords suggestions with empty role, want 0", n)
		}
	})

	t.Run("all keywords present yields no suggestion", func(t *testing.T) {
		text := "JavaScript Python React Node.js API Git Agile " + longResumeText()
		got := engine.Analyze(Input{ResumeText: text, TargetRole: "Software Engineer"})
		if n := countByID(got, "keywords"); n != 0 {
			t.Errorf("got %d keywords suggestions, want 0", n)
		}
	})

	t.Run("partial gap reports missing terms only", func(t *testing.T) {
		got := engine.Analyze(Input{
			ResumeText: "Built services in Python with React frontends using Git and Agile practices, exposing an API.",
			TargetRole: "software engineer",
		})

		s, ok := findByID(got, "keywords")
		if !ok {
			t.Fatal("expected a keywords suggestion")
		}
		if !strings.Contains(s.SuggestionText, "JavaScript") || !strings.Contains(s.SuggestionText, "Node.js") {
			t.Errorf("expected JavaScript and Node.js listed as missing: %s", s.SuggestionText)
		}
		if strings.Contains(s.SuggestionText, "Python") {
			t.Errorf("Python is present in the resume and should not be listed: %s", s.SuggestionText)
		}
	})
}

func TestAnalyzeSectionChecks(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name       string
		resumeText string
		section    string
		wantID     string
		want       bool
	}{
		{
			name:       "short summary",
			resumeText: "Engineer with 5 years of experience.",
			section:    "summary",
			wantID:     "summary-expand",
			want:       true,
		},
		{
			name:       "short professional-summary",
			resumeText: "Engineer.",
			section:    "professional-summary",
			wantID:     "summary-expand",
			want:       true,
		},
		{
			name:       "long summary",
			resumeText: strings.Repeat("A detailed summary sentence. ", 10),
			section:    "summary",
			wantID:     "summary-expand",
			want:       false,
		},
		{
			name:       "short text but no section",
			resumeText: "Engineer.",
			section:    "",
			wantID:     "summary-expand",
			want:       false,
		},
		{
			name:       "short text in unrelated section",
			resumeText: "Engineer.",
			section:    "experience",
			wantID:     "summary-expand",
			want:       false,
		},
		{
			name:       "skills without bullets",
			resumeText: "Go, Python, SQL",
			section:    "skills",
			wantID:     "skills-format",
			want:       true,
		},
		{
			name:       "technical-skills without bullets",
			resumeText: "Go and Python and SQL",
			section:    "technical-skills",
			wantID:     "skills-format",
			want:       true,
		},
		{
			name:       "skills with hyphens",
			resumeText: "- Go\n- Python\n- SQL",
			section:    "skills",
			wantID:     "skills-format",
			want:       false,
		},
		{
			name:       "skills with bullet characters",
			resumeText: "• Go • Python • SQL",
			section:    "skills",
			wantID:     "skills-format",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Analyze(Input{
				ResumeText: tt.resumeText,
				TargetRole: "software engineer",
				Section:    tt.section,
			})
			_, found := findByID(got, tt.wantID)
			if found != tt.want {
				t.Errorf("suggestion %q present = %v, want %v", tt.wantID, found, tt.want)
			}
		})
	}
}

func TestAnalyzeSummaryReferencesRole(t *testing.T) {
	engine := newTestEngine()

	got := engine.Analyze(Input{
		ResumeText: "Engineer.",
		TargetRole: "data scientist",
		Section:    "summary",
	})
	s, ok := findByID(got, "summary-expand")
	if !ok {
		t.Fatal("expected a summary-expand suggestion")
	}
	if !strings.Contains(s.SuggestionText, "data scientist") {
		t.Errorf("summary suggestion should reference the target role: %s", s.SuggestionText)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	engine := newTestEngine()
	in := Input{
		ResumeText: "Responsible for things.",
		TargetRole: "software engineer",
		Section:    "summary",
	}

	first := engine.Analyze(in)
	for i := 0; i < 3; i++ {
		again := engine.Analyze(in)
		if len(again) != len(first) {
			t.Fatalf("run %d returned %d suggestions, first run returned %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Errorf("run %d suggestion %d differs: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestAnalyzeNeverSetsApplied(t *testing.T) {
	engine := newTestEngine()
	got := engine.Analyze(Input{TargetRole: "software engineer", Section: "skills"})
	for _, s := range got {
		if s.Applied {
			t.Errorf("suggestion %q has applied=true from the engine", s.ID)
		}
	}
}
