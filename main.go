//go:build !gui

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
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

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	pageBreakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))
)

type model struct {
	document *doc.Document
	tracker  *viewtrack.Tracker
	reporter *visibility.Reporter
	sess     *session.Session

	vp         viewport.Model
	pageStarts []int // first content line of each page
	ready      bool
	quitting   bool
}

func newModel(document *doc.Document, tracker *viewtrack.Tracker, sess *session.Session) *model {
	return &model{
		document: document,
		tracker:  tracker,
		sess:     sess,
	}
}

// pageBreak separates pages in the scroll surface.
const pageBreak = "─── ✂ ───"

// content renders all pages into one scrollable string and records
// where each page starts. Blank pages occupy one empty row; the break
// row between pages counts toward the page above it.
func (m *model) content() string {
	var rows []string
	m.pageStarts = m.pageStarts[:0]
	for i, p := range m.document.Pages {
		m.pageStarts = append(m.pageStarts, len(rows))
		if len(p.Lines) == 0 {
			rows = append(rows, "")
		} else {
			rows = append(rows, p.Lines...)
		}
		if i < len(m.document.Pages)-1 {
			rows = append(rows, pageBreakStyle.Render(pageBreak))
		}
	}
	return strings.Join(rows, "\n")
}

// pageHeights mirrors content's row accounting, per page.
func (m *model) pageHeights() []float64 {
	heights := make([]float64, len(m.document.Pages))
	for i, p := range m.document.Pages {
		h := len(p.Lines)
		if h == 0 {
			h = 1
		}
		if i < len(m.document.Pages)-1 {
			h++ // page break row
		}
		heights[i] = float64(h)
	}
	return heights
}

func (m *model) Init() tea.Cmd {
	return nil
}

// report pushes the viewport's current geometry into the tracker.
func (m *model) report() {
	if m.reporter != nil {
		m.reporter.Scroll(float64(m.vp.YOffset), float64(m.vp.Height))
	}
}

// gotoPage scrolls to the top of a page and records the explicit
// navigation in the tracker.
func (m *model) gotoPage(page int) {
	if !m.ready || len(m.pageStarts) == 0 {
		return
	}
	if page < 1 {
		page = 1
	}
	if page > len(m.pageStarts) {
		page = len(m.pageStarts)
	}
	m.tracker.SetView(page, 0)
	m.vp.SetYOffset(m.pageStarts[page-1])
	m.report()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c":
			m.quitting = true
			m.sess.Close()
			m.tracker.Close()
			return m, tea.Quit

		case "n":
			m.gotoPage(m.tracker.View().PageNumber + 1)
			return m, nil

		case "p":
			m.gotoPage(m.tracker.View().PageNumber - 1)
			return m, nil

		case "g":
			m.vp.GotoTop()
			m.report()
			return m, nil

		case "G":
			m.vp.GotoBottom()
			m.report()
			return m, nil

		case "r":
			m.tracker.Reset()
			m.vp.GotoTop()
			m.report()
			return m, nil
		}

	case tea.WindowSizeMsg:
		chromeHeight := 2 // status line on top, controls below
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.vp.SetContent(m.content())
			m.reporter = visibility.NewReporter(m.tracker, visibility.Layout(m.pageHeights()))
			m.ready = true

			// One-time restore of the saved reading position, then let
			// scroll-driven reports take over.
			page := m.sess.RestorePage(m.document.PageCount())
			if page > 1 && page <= len(m.pageStarts) {
				m.vp.SetYOffset(m.pageStarts[page-1])
			}
			m.sess.MarkRestored()
			m.report()
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - chromeHeight
			m.report()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	m.report()
	return m, cmd
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	v := m.tracker.View()
	status := titleStyle.Render(m.document.Title) + statusStyle.Render(v.String())
	controls := controlsStyle.Render("↑/↓/PgUp/PgDn: scroll  n/p: page  g/G: start/end  r: reset  q: quit")

	return status + "\n" + m.vp.View() + "\n" + controls
}

func main() {
	fresh := flag.Bool("fresh", false, "Ignore saved reading position")
	showTOC := flag.Bool("toc", false, "Print the table of contents and exit")
	export := flag.Bool("export", false, "Print extracted text and exit")
	exportB64 := flag.Bool("export-base64", false, "Print extracted text as Base64 and exit")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Docview - Terminal Document Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  docview [options] file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nSupported formats:\n")
		for _, f := range doc.SupportedFormats() {
			fmt.Fprintf(os.Stderr, "  %s\n", f)
		}
		fmt.Fprintf(os.Stderr, "  plain text (anything else)\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  docview paper.pdf           Open a PDF, resuming where you left off\n")
		fmt.Fprintf(os.Stderr, "  docview -fresh book.epub    Open from page 1\n")
		fmt.Fprintf(os.Stderr, "  docview -export paper.pdf   Dump extracted text to stdout\n")
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  ↑/↓ PgUp/PgDn    Scroll\n")
		fmt.Fprintf(os.Stderr, "  n/p              Next/previous page\n")
		fmt.Fprintf(os.Stderr, "  g/G              Start/end of document\n")
		fmt.Fprintf(os.Stderr, "  r                Reset reading position\n")
		fmt.Fprintf(os.Stderr, "  q                Quit\n")
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

	if *showTOC {
		printTOC(filename)
		os.Exit(0)
	}
	if *export {
		fmt.Println(document.Text())
		os.Exit(0)
	}
	if *exportB64 {
		fmt.Println(document.Base64())
		os.Exit(0)
	}

	tracker := viewtrack.New()
	tracker.SetTotalPages(document.PageCount())

	store := newStore(filename, *fresh)
	sess := session.New(tracker, store, storeHash(filename))

	m := newModel(document, tracker, sess)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printTOC writes the table of contents for formats that have one.
func printTOC(filename string) {
	lower := strings.ToLower(filename)
	var provider doc.TOCProvider
	switch {
	case strings.HasSuffix(lower, ".epub"):
		provider = &doc.EPUBFormat{}
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		provider = &doc.MarkdownFormat{}
	}
	if provider == nil {
		fmt.Fprintln(os.Stderr, "Error: no table of contents for this format.")
		os.Exit(1)
	}

	toc, err := provider.TOC(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read table of contents: %v\n", err)
		os.Exit(1)
	}
	for _, e := range toc {
		fmt.Printf("%sp.%-4d %s\n", strings.Repeat("  ", e.Level), e.Page, e.Title)
	}
}

// newStore opens the state store, falling back to an in-memory no-op
// when persistence is unavailable. The viewer works without it.
func newStore(filename string, fresh bool) session.Store {
	store, err := state.NewStateStore()
	if err != nil {
		return memStore{}
	}
	if fresh {
		if hash, err := state.ComputeHash(filename); err == nil {
			store.Clear(hash)
		}
	}
	return store
}

func storeHash(filename string) string {
	hash, err := state.ComputeHash(filename)
	if err != nil {
		return ""
	}
	return hash
}

// memStore is the persistence-absent fallback.
type memStore struct{}

func (memStore) GetPage(string) int        { return 0 }
func (memStore) SetPage(string, int) error { return nil }
