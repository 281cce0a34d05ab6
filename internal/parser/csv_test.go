package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestCSVParser_BatchesRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("name,amount\n")
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&b, "item%d,%d\n", i, i*10)
	}

	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(b.String()), "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "data" {
		t.Errorf("expected title %q, got %q", "data", doc.Title)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}

	first := strings.Split(doc.Pages[0].Text, "\n")
	if first[0] != "Rows 2-21" {
		t.Errorf("expected first header %q, got %q", "Rows 2-21", first[0])
	}
	if first[1] != "- name: item1, amount: 10" {
		t.Errorf("unexpected first row %q", first[1])
	}
	if len(first) != 21 {
		t.Errorf("expected 21 lines on page 1, got %d", len(first))
	}

	second := strings.Split(doc.Pages[1].Text, "\n")
	if second[0] != "Rows 22-26" {
		t.Errorf("expected second header %q, got %q", "Rows 22-26", second[0])
	}
	if doc.Pages[1].Number != 2 {
		t.Errorf("expected page number 2, got %d", doc.Pages[1].Number)
	}
}

func TestCSVParser_HeaderOnly(t *testing.T) {
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader("a,b,c\n"), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages, got %d", len(doc.Pages))
	}
}
