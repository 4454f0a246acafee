package doc

import (
	"os"
	"testing"
)

func TestPDFLoad(t *testing.T) {
	pdfPath := "../../testdata/sample.pdf"
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		t.Skip("sample.pdf not found, skipping test")
	}

	f := &PDFFormat{}
	d, err := f.Load(pdfPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if d.PageCount() == 0 {
		t.Error("expected at least one page")
	}
	for i, p := range d.Pages {
		if p.Number != i+1 {
			t.Errorf("page %d numbered %d", i, p.Number)
		}
	}
}
