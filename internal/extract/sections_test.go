package extract

import (
	"testing"
)

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"plain header", "EXPERIENCE", true},
		{"multi-word header", "WORK HISTORY", true},
		{"too short", "CV", false},
		{"exactly three chars", "ABC", false},
		{"mixed case", "Experience", false},
		{"contains pipe", "NEW YORK | REMOTE", false},
		{"contains at sign", "JANE@EXAMPLE.COM", false},
		{"empty", "", false},
		{"digits only", "2020", false},
		{"header with digits", "EXPERIENCE 2020", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHeaderLine(tt.line); got != tt.want {
				t.Errorf("isHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSections(t *testing.T) {
	text := `Jane Doe
jane@example.com

SUMMARY
Seasoned engineer with 8 years of experience.

EXPERIENCE
Acme Corp
Led platform migrations.

SKILLS
- Go
- SQL`

	sections := Sections(text)
	if len(sections) != 4 {
		t.Fatalf("got %d sections, want 4: %+v", len(sections), sections)
	}

	if sections[0].Header != "" {
		t.Errorf("preamble header = %q, want empty", sections[0].Header)
	}
	if sections[0].Body == "" {
		t.Error("preamble body is empty, want contact lines")
	}

	wantHeaders := []string{"SUMMARY", "EXPERIENCE", "SKILLS"}
	for i, want := range wantHeaders {
		if got := sections[i+1].Header; got != want {
			t.Errorf("section %d header = %q, want %q", i+1, got, want)
		}
		if sections[i+1].Body == "" {
			t.Errorf("section %q has empty body", want)
		}
	}
}

func TestSectionsEmptyText(t *testing.T) {
	if got := Sections(""); len(got) != 0 {
		t.Errorf("Sections(\"\") = %+v, want empty", got)
	}
}

func TestFromPDFEmptyData(t *testing.T) {
	if _, err := FromPDF(nil); err == nil {
		t.Error("expected error for empty PDF data")
	}
}
