// Package parser turns uploaded files into page-ordered plain text.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// Parser converts raw document bytes into a Document of plain-text pages.
type Parser interface {
	Parse(r io.Reader, filename string) (*document.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options tunes parser behavior.
type Options struct {
	// PDFFallbackPdftotext shells out to pdftotext when the PDF library
	// cannot read a file.
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// ParseFile picks a parser by extension and parses r.
func ParseFile(r io.Reader, filename string, opts Options) (*document.Document, error) {
	p, err := ForFile(filename, opts)
	if err != nil {
		return nil, err
	}
	return p.Parse(r, filename)
}

func newDocument(filename string) *document.Document {
	base := filepath.Base(filename)
	return &document.Document{
		ID:    base,
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// splitPages breaks text on form feeds. Empty pages are kept so page
// numbers stay aligned with the source; an empty text has no pages.
func splitPages(text string) []document.Page {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw := strings.Split(text, "\f")
	pages := make([]document.Page, len(raw))
	for i, t := range raw {
		pages[i] = document.Page{Number: i + 1, Text: t}
	}
	return pages
}

// singlePage wraps block lines as page 1, or no pages when there are none.
func singlePage(lines []string) []document.Page {
	if len(lines) == 0 {
		return nil
	}
	return []document.Page{{Number: 1, Text: strings.Join(lines, "\n")}}
}
