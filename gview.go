//go:build gui

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/docview/docview/internal/doc"
	"github.com/docview/docview/internal/session"
	"github.com/docview/docview/internal/state"
	"github.com/docview/docview/internal/viewtrack"
	"github.com/docview/docview/internal/visibility"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// gviewModel ties the document to the tracking engine for the GUI build.
type gviewModel struct {
	document *doc.Document
	tracker  *viewtrack.Tracker
	sess     *session.Session
	reporter *visibility.Reporter

	pageLabels []*widget.Label
}

// buildPages renders each page as its own label so per-page pixel
// heights are measurable for visibility reporting.
func (m *gviewModel) buildPages() *fyne.Container {
	box := container.NewVBox()
	for i, p := range m.document.Pages {
		label := widget.NewLabel(p.Text())
		label.Wrapping = fyne.TextWrapWord
		m.pageLabels = append(m.pageLabels, label)
		box.Add(label)
		if i < len(m.document.Pages)-1 {
			box.Add(widget.NewSeparator())
		}
	}
	return box
}

// layout measures the current pixel extent of every page.
func (m *gviewModel) layout() []visibility.PageLayout {
	pages := make([]visibility.PageLayout, len(m.pageLabels))
	for i, label := range m.pageLabels {
		pos := label.Position()
		size := label.Size()
		pages[i] = visibility.PageLayout{Top: float64(pos.Y), Height: float64(size.Height)}
	}
	return pages
}

func main() {
	fresh := flag.Bool("fresh", false, "Ignore saved reading position")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Docview - Document Viewer (GUI)\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  docview [options] file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Scroll wheel     Scroll\n")
		fmt.Fprintf(os.Stderr, "  N/P              Next/previous page\n")
		fmt.Fprintf(os.Stderr, "  R                Reset reading position\n")
		fmt.Fprintf(os.Stderr, "  Q                Quit\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("docview %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: No file provided.")
		fmt.Fprintln(os.Stderr, "Try: docview -h")
		os.Exit(1)
	}
	filename := flag.Arg(0)

	document, err := doc.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open '%s': %v\n", filename, err)
		os.Exit(1)
	}

	tracker := viewtrack.New()
	tracker.SetTotalPages(document.PageCount())

	var store session.Store
	if s, err := state.NewStateStore(); err == nil {
		store = s
	} else {
		store = noopStore{}
	}
	hash, _ := state.ComputeHash(filename)
	if *fresh {
		if s, ok := store.(*state.StateStore); ok && hash != "" {
			s.Clear(hash)
		}
	}
	sess := session.New(tracker, store, hash)

	m := &gviewModel{document: document, tracker: tracker, sess: sess}
	m.reporter = visibility.NewReporter(tracker, nil)

	a := app.New()
	w := a.NewWindow("docview - " + document.Title)

	statusLabel := widget.NewLabel(tracker.View().String())
	statusLabel.Alignment = fyne.TextAlignCenter
	unsub := tracker.Subscribe(func(v viewtrack.CurrentView) {
		statusLabel.SetText(v.String())
	})

	controlsLabel := widget.NewLabel("Scroll: mouse  N/P: page  R: reset  Q: quit")
	controlsLabel.Alignment = fyne.TextAlignCenter

	scroll := container.NewVScroll(m.buildPages())

	report := func() {
		// Remeasure every time: resizes and wrapping changes move pages.
		m.reporter.SetLayout(m.layout())
		m.reporter.Scroll(float64(scroll.Offset.Y), float64(scroll.Size().Height))
	}
	scroll.OnScrolled = func(fyne.Position) { report() }

	scrollToPage := func(page int) {
		if page < 1 {
			page = 1
		}
		if page > document.PageCount() {
			page = document.PageCount()
		}
		tracker.SetView(page, 0)
		layout := m.layout()
		if page-1 < len(layout) {
			scroll.Offset = fyne.NewPos(0, float32(layout[page-1].Top))
			scroll.Refresh()
			report()
		}
	}

	w.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case 'n', 'N':
			scrollToPage(tracker.View().PageNumber + 1)
		case 'p', 'P':
			scrollToPage(tracker.View().PageNumber - 1)
		case 'r', 'R':
			tracker.Reset()
			scroll.Offset = fyne.NewPos(0, 0)
			scroll.Refresh()
			report()
		case 'q', 'Q':
			sess.Close()
			unsub()
			tracker.Close()
			a.Quit()
		}
	})

	w.SetContent(container.NewBorder(statusLabel, controlsLabel, nil, nil, scroll))
	w.Resize(fyne.NewSize(800, 600))

	w.SetOnClosed(func() {
		sess.Close()
		unsub()
		tracker.Close()
	})

	// Restore the saved reading position once the first layout pass has
	// given pages their real sizes.
	go func() {
		time.Sleep(100 * time.Millisecond)
		fyne.Do(func() {
			page := sess.RestorePage(document.PageCount())
			if page > 1 {
				layout := m.layout()
				if page-1 < len(layout) {
					scroll.Offset = fyne.NewPos(0, float32(layout[page-1].Top))
					scroll.Refresh()
				}
			}
			sess.MarkRestored()
			report()
		})
	}()

	w.ShowAndRun()
}

// noopStore is the persistence-absent fallback.
type noopStore struct{}

func (noopStore) GetPage(string) int        { return 0 }
func (noopStore) SetPage(string, int) error { return nil }
