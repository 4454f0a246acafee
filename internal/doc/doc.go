// Package doc loads documents as sequences of pages for the viewer.
package doc

import (
	"encoding/base64"
	"strings"
)

// Page is one displayable page of a document.
type Page struct {
	Number int // 1-based
	Lines  []string
}

// Text returns the page content as a single string.
func (p Page) Text() string {
	return strings.Join(p.Lines, "\n")
}

// Document is a loaded, paginated document.
type Document struct {
	Title string
	Pages []Page
}

// PageCount returns the number of pages, never less than 1.
func (d *Document) PageCount() int {
	if len(d.Pages) == 0 {
		return 1
	}
	return len(d.Pages)
}

// Text returns the whole document as plain text, pages separated by
// blank lines. This is the export surface for external consumers.
func (d *Document) Text() string {
	parts := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n\n")
}

// Base64 returns the plain-text export encoded as standard Base64.
func (d *Document) Base64() string {
	return base64.StdEncoding.EncodeToString([]byte(d.Text()))
}
