package doc

// TOCEntry points at the page where a section starts.
type TOCEntry struct {
	Title   string
	Preview string
	Page    int
	Level   int
}

// TOCProvider is an optional interface for formats with a table of contents.
type TOCProvider interface {
	TOC(filename string) ([]TOCEntry, error)
}
