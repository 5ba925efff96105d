package extract

import (
	"strings"
	"testing"
)

func TestIsMarkdown(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"notes.md", true},
		{"Report.MD", true},
		{"deck.markdown", true},
		{"report.txt", false},
		{"mdfile", false},
	}

	for _, tt := range tests {
		if got := IsMarkdown(tt.filename); got != tt.want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestMarkdownText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains []string
		excludes []string
	}{
		{
			name:    "empty input",
			content: "",
		},
		{
			name:     "headings and body",
			content:  "# Q1 Results\n\nRevenue grew 20%.\n\n## Outlook\n\nGuidance unchanged.",
			contains: []string{"Q1 Results", "Revenue grew 20%.", "Outlook", "Guidance unchanged."},
			excludes: []string{"#"},
		},
		{
			name:     "emphasis markers stripped",
			content:  "The **CEO** resigned in *March*.",
			contains: []string{"CEO", "resigned in", "March"},
			excludes: []string{"**", "*March*"},
		},
		{
			name:     "list items",
			content:  "- revenue up\n- costs down\n",
			contains: []string{"revenue up", "costs down"},
			excludes: []string{"- "},
		},
		{
			name:     "fenced code retained as text",
			content:  "Intro\n\n```\nEBITDA = revenue - costs\n```\n",
			contains: []string{"EBITDA = revenue - costs"},
			excludes: []string{"```"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownText([]byte(tt.content))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("MarkdownText() = %q, missing %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("MarkdownText() = %q, should not contain %q", got, bad)
				}
			}
		})
	}
}
