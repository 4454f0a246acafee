package doc

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBFormat implements Format for EPUB files. One spine item becomes
// one page, so TOC entries and page numbers line up with the spine.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

func (f *EPUBFormat) Load(filename string) (*Document, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]
	d := &Document{Title: book.Title}
	if d.Title == "" {
		d.Title = filepath.Base(filename)
	}

	for i, ref := range book.Spine.Itemrefs {
		// Unreadable spine items stay in the document as blank pages so
		// page numbers always equal spine position + 1.
		page := Page{Number: i + 1}
		if ref.Item != nil {
			if r, err := ref.Item.Open(); err == nil {
				data, err := io.ReadAll(r)
				r.Close()
				if err == nil {
					page.Lines = wrap(extractTextFromHTML(string(data)), pageWidth)
				}
			}
		}
		d.Pages = append(d.Pages, page)
	}

	if len(d.Pages) == 0 {
		d.Pages = []Page{{Number: 1}}
	}
	return d, nil
}

func extractTextFromHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				out.WriteString(t)
				out.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out.String()
}
