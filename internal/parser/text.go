package parser

import (
	"fmt"
	"io"

	"github.com/dgallion1/docrank/internal/document"
)

// TextParser handles plain text files. Form feeds separate pages.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	doc := newDocument(filename)
	doc.Pages = splitPages(string(src))
	return doc, nil
}
