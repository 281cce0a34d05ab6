package document

// Page is one page of plain text as produced by a parser.
type Page struct {
	Number int    // 1-based page number
	Text   string // Raw page text, may be empty
}

// Document is a parsed input file, flattened to pages.
type Document struct {
	ID    string // Source identifier (the uploaded filename)
	Title string // Title from metadata or filename
	Pages []Page
}

// Section is a titled, page-anchored span of a document. Sections are
// immutable once produced by the segmenter.
type Section struct {
	DocumentID  string
	PageNumber  int    // Page the section starts on
	Title       string // Header line, or a synthesized "Page N" label
	Content     string // Body text, trimmed
	StartOffset int    // Line index in the flattened page stream
	EndOffset   int
}

// Text returns the lowercase title and content joined by a space, the form
// every substring-based relevance signal matches against.
func (s Section) Text() string {
	return lower(s.Title + " " + s.Content)
}
