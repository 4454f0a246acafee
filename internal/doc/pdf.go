package doc

import (
	"fmt"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

// pageWidth is the wrap width for extracted PDF text.
const pageWidth = 80

// PDFFormat implements Format for PDF files. Only the embedded text
// layer is extracted; scanned (image-only) PDFs yield empty pages.
type PDFFormat struct{}

func init() {
	Register(&PDFFormat{})
}

func (f *PDFFormat) Name() string         { return "PDF" }
func (f *PDFFormat) Extensions() []string { return []string{".pdf"} }

func (f *PDFFormat) Load(filename string) (*Document, error) {
	osFile, r, err := pdf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer osFile.Close()

	d := &Document{Title: filepath.Base(filename)}
	fonts := make(map[string]*pdf.Font)

	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := Page{Number: i}
		p := r.Page(i)
		if !p.V.IsNull() {
			for _, name := range p.Fonts() {
				if _, ok := fonts[name]; !ok {
					font := p.Font(name)
					fonts[name] = &font
				}
			}
			// A page that fails text extraction stays in the document
			// as a blank page so numbering matches the source file.
			if text, err := p.GetPlainText(fonts); err == nil {
				page.Lines = wrap(text, pageWidth)
			}
		}
		d.Pages = append(d.Pages, page)
	}

	if len(d.Pages) == 0 {
		d.Pages = []Page{{Number: 1}}
	}
	return d, nil
}
