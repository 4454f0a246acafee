package doc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		lines     int
		perPage   int
		wantPages int
	}{
		{"empty document has one page", 0, 40, 1},
		{"exact multiple", 80, 40, 2},
		{"remainder gets its own page", 81, 40, 3},
		{"single line", 1, 40, 1},
		{"invalid perPage falls back to default", 50, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Paginate("t", make([]string, tt.lines), tt.perPage)
			if len(d.Pages) != tt.wantPages {
				t.Errorf("got %d pages, want %d", len(d.Pages), tt.wantPages)
			}
			for i, p := range d.Pages {
				if p.Number != i+1 {
					t.Errorf("page %d numbered %d", i, p.Number)
				}
			}
		})
	}
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("plain text fallback", func(t *testing.T) {
		lines := strings.Repeat("a line\n", 100)
		path := filepath.Join(tmpDir, "test.txt")
		os.WriteFile(path, []byte(lines), 0644)

		d, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if d.Title != "test.txt" {
			t.Errorf("Title = %q, want test.txt", d.Title)
		}
		// 100 content lines plus the trailing empty split = 3 pages of 40.
		if got := d.PageCount(); got != 3 {
			t.Errorf("PageCount() = %d, want 3", got)
		}
	})

	t.Run("markdown routed to format", func(t *testing.T) {
		path := filepath.Join(tmpDir, "test.md")
		os.WriteFile(path, []byte("# Title\n\nbody"), 0644)

		d, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if d.PageCount() != 1 {
			t.Errorf("PageCount() = %d, want 1", d.PageCount())
		}
	})

	t.Run("nonexistent file", func(t *testing.T) {
		if _, err := Open(filepath.Join(tmpDir, "nonexistent.txt")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) == 0 {
		t.Fatal("no formats registered")
	}
	joined := strings.Join(formats, "; ")
	for _, want := range []string{"PDF", "EPUB", "Markdown"} {
		if !strings.Contains(joined, want) {
			t.Errorf("%s not registered: %v", want, formats)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "short text single line",
			text:  "hello world",
			width: 80,
			want:  []string{"hello world"},
		},
		{
			name:  "breaks at word boundary",
			text:  "one two three four",
			width: 9,
			want:  []string{"one two", "three", "four"},
		},
		{
			name:  "empty text",
			text:  "   ",
			width: 10,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("wrap() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
