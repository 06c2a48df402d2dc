package extract

import (
	"strings"
	"unicode"
)

// Section is a contiguous block of resume text under one header.
type Section struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

// Sections splits extracted resume text into header-delimited blocks.
// A line counts as a header when it is fully capitalized, longer than
// three characters, and contains neither "|" nor "@" (those usually
// mark contact lines, not headers). Text before the first header is
// grouped under an empty header.
func Sections(text string) []Section {
	var sections []Section
	current := Section{}
	var body strings.Builder

	flush := func() {
		current.Body = strings.TrimSpace(body.String())
		if current.Header != "" || current.Body != "" {
			sections = append(sections, current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if isHeaderLine(trimmed) {
			flush()
			current = Section{Header: trimmed}
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()

	return sections
}

func isHeaderLine(line string) bool {
	if len(line) <= 3 {
		return false
	}
	if strings.ContainsAny(line, "|@") {
		return false
	}

	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
