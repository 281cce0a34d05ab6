package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/dgallion1/docrank/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docrank-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, err := extractPDFPages(tmpPath)
	if err != nil && p.FallbackPdftotext {
		var text string
		text, err = extractPdftotext(tmpPath)
		pages = splitPages(text)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	doc := newDocument(filename)
	doc.Pages = pages
	return doc, nil
}

// extractPDFPages reads every page in order. Pages that cannot be decoded
// are kept as empty text so numbering matches the PDF.
func extractPDFPages(path string) (pages []document.Page, err error) {
	defer func() {
		// The library panics on some malformed content streams.
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("pdf: %v", rec)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages = make([]document.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := document.Page{Number: i}
		pg := reader.Page(i)
		if !pg.V.IsNull() {
			if text, err := pg.GetPlainText(nil); err == nil {
				page.Text = text
			}
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
