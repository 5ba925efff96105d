// Package extract pulls plain text out of synced files before chunking, so
// markup does not pollute the search index.
package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// IsMarkdown reports whether the filename looks like a markdown file.
func IsMarkdown(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// MarkdownText parses markdown and returns its textual content, headings
// and body alike, with block boundaries rendered as newlines.
func MarkdownText(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	doc := markdownParser.Parser().Parse(text.NewReader(content))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(content))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeBlock:
			writeLines(&b, node, content)
		case *ast.FencedCodeBlock:
			writeLines(&b, node, content)
		case *ast.Heading, *ast.Paragraph, *ast.ListItem, *ast.Blockquote:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

func writeLines(b *strings.Builder, n ast.Node, content []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(content))
	}
}
