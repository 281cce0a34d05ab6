// Package segment splits the page text of one document into titled,
// page-anchored sections using heuristic header detection.
package segment

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// line is one entry of the flattened page stream. Marker entries stand in for
// page boundaries and carry no text.
type line struct {
	text   string
	page   int
	marker bool
}

// flatten joins pages into a single line stream. Index 0 is an empty lead
// line, each page contributes a marker followed by its raw lines, so offsets
// line up with a "\n[PAGE n]\n"-joined rendering of the document.
func flatten(pages []document.Page) []line {
	lines := []line{{}}
	for _, p := range pages {
		lines = append(lines, line{page: p.Number, marker: true})
		for _, l := range strings.Split(p.Text, "\n") {
			lines = append(lines, line{text: l, page: p.Number})
		}
	}
	return lines
}

// Segment runs the default header rules over the pages of one document.
func Segment(docID string, pages []document.Page) []document.Section {
	return SegmentWith(DefaultRules, docID, pages)
}

// SegmentWith splits pages into sections using rules to detect header lines.
// When no header yields a non-empty section, every non-empty page becomes its
// own section instead. An empty page list yields no sections.
func SegmentWith(rules []Rule, docID string, pages []document.Page) []document.Section {
	if len(pages) == 0 {
		return nil
	}
	lines := flatten(pages)

	var (
		sections []document.Section
		open     bool
		title    string
		page     int
		start    int
		body     []string
	)
	currentPage := 1

	flush := func(end int) {
		if !open || len(body) == 0 {
			return
		}
		sections = append(sections, document.Section{
			DocumentID:  docID,
			PageNumber:  page,
			Title:       title,
			Content:     strings.TrimSpace(strings.Join(body, "\n")),
			StartOffset: start,
			EndOffset:   end,
		})
	}

	for i, l := range lines {
		if l.marker {
			currentPage = l.page
			continue
		}
		text := strings.TrimSpace(l.text)
		if text == "" {
			continue
		}
		if classify(rules, text) != "" {
			flush(i)
			open, title, page, start, body = true, text, currentPage, i, nil
			continue
		}
		if open {
			body = append(body, text)
		}
	}
	flush(len(lines))

	if len(sections) == 0 {
		sections = pageSections(docID, lines)
	}
	return sections
}

// pageSections builds one section per non-empty page. The title uses the
// page's first line when it is short enough to read as a label.
func pageSections(docID string, lines []line) []document.Section {
	var sections []document.Section
	for i := 0; i < len(lines); i++ {
		if !lines[i].marker {
			continue
		}
		start := i
		end := i + 1
		for end < len(lines) && !lines[end].marker {
			end++
		}
		raw := make([]string, 0, end-start-1)
		for _, l := range lines[start+1 : end] {
			raw = append(raw, l.text)
		}
		text := strings.TrimSpace(strings.Join(raw, "\n"))
		if text != "" {
			n := lines[start].page
			sections = append(sections, document.Section{
				DocumentID:  docID,
				PageNumber:  n,
				Title:       pageTitle(n, text),
				Content:     text,
				StartOffset: start + 1,
				EndOffset:   end,
			})
		}
		i = end - 1
	}
	return sections
}

func pageTitle(n int, text string) string {
	for _, l := range strings.Split(text, "\n") {
		first := strings.TrimSpace(l)
		if first == "" {
			continue
		}
		if document.RuneLen(first) < 80 {
			return fmt.Sprintf("Page %d: %s...", n, document.Truncate(first, 50))
		}
		break
	}
	return fmt.Sprintf("Page %d", n)
}
