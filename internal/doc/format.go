package doc

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPageLines is how many lines make a page for formats without
// intrinsic page boundaries.
const DefaultPageLines = 40

// Format defines a file format loader.
type Format interface {
	Name() string
	Extensions() []string
	Load(filename string) (*Document, error)
}

var registry []Format

// Register adds a format loader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Open loads a file using a registered format, or pages it as plain
// text when no format claims the extension.
func Open(filename string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f.Load(filename)
			}
		}
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Paginate(filepath.Base(filename), strings.Split(string(data), "\n"), DefaultPageLines), nil
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

// Paginate cuts lines into fixed-size pages. A document always has at
// least one page, even when empty.
func Paginate(title string, lines []string, perPage int) *Document {
	if perPage < 1 {
		perPage = DefaultPageLines
	}
	d := &Document{Title: title}
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		d.Pages = append(d.Pages, Page{Number: len(d.Pages) + 1, Lines: lines[start:end]})
	}
	if len(d.Pages) == 0 {
		d.Pages = []Page{{Number: 1}}
	}
	return d
}

// wrap breaks text into lines of at most width characters, splitting
// on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
