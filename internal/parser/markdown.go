package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Markup is dropped
// and each heading or text line becomes one line of a single page.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var lines []string
	markdownLines(root, src, &lines)

	doc := newDocument(filename)
	doc.Pages = singlePage(lines)
	return doc, nil
}

// markdownLines walks block nodes in document order. Leaf blocks contribute
// their inline text, code blocks their raw lines.
func markdownLines(n ast.Node, src []byte, out *[]string) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				appendLines(out, string(seg.Value(src)))
			}
			continue
		}
		if fc := c.FirstChild(); fc == nil || fc.Type() == ast.TypeInline {
			appendLines(out, inlineText(c, src))
			continue
		}
		markdownLines(c, src, out)
	}
}

// inlineText concatenates the text of n's inline children, turning soft and
// hard line breaks into newlines.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

func appendLines(out *[]string, s string) {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			*out = append(*out, line)
		}
	}
}
