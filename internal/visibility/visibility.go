// Package visibility turns a scroll offset and per-page heights into
// the per-page intersection signals the view tracker consumes.
package visibility

// PageLayout is one page's vertical extent in document coordinates.
type PageLayout struct {
	Top    float64
	Height float64
}

// Report is the visibility of one mounted page.
type Report struct {
	Page           int // 1-based
	Ratio          float64
	CenterDistance float64
}

// Sink receives visibility signals. *viewtrack.Tracker satisfies it.
type Sink interface {
	ReportVisibility(page int, ratio, centerDistance float64)
	UnregisterPage(page int)
}

// Layout stacks pages top to bottom and returns their extents.
func Layout(heights []float64) []PageLayout {
	pages := make([]PageLayout, len(heights))
	top := 0.0
	for i, h := range heights {
		pages[i] = PageLayout{Top: top, Height: h}
		top += h
	}
	return pages
}

// Visible reports every page intersecting the viewport
// [scrollTop, scrollTop+viewHeight). Pages are assumed sorted by Top.
func Visible(pages []PageLayout, scrollTop, viewHeight float64) []Report {
	if viewHeight <= 0 {
		return nil
	}
	bottom := scrollTop + viewHeight
	center := scrollTop + viewHeight/2

	var reports []Report
	for i, p := range pages {
		if p.Top >= bottom {
			break
		}
		if p.Height <= 0 || p.Top+p.Height <= scrollTop {
			continue
		}
		overlap := min(p.Top+p.Height, bottom) - max(p.Top, scrollTop)
		dist := p.Top + p.Height/2 - center
		if dist < 0 {
			dist = -dist
		}
		reports = append(reports, Report{
			Page:           i + 1,
			Ratio:          overlap / p.Height,
			CenterDistance: dist,
		})
	}
	return reports
}

// Reporter tracks which pages are mounted and pushes the delta of each
// scroll step into a sink: reports for pages still visible, an
// unregister for each page that scrolled away.
type Reporter struct {
	sink    Sink
	pages   []PageLayout
	mounted map[int]bool
}

// NewReporter builds a reporter over a fixed page layout.
func NewReporter(sink Sink, pages []PageLayout) *Reporter {
	return &Reporter{
		sink:    sink,
		pages:   pages,
		mounted: make(map[int]bool),
	}
}

// SetLayout replaces the page layout, for surfaces whose geometry
// changes after construction (e.g. window resizes).
func (r *Reporter) SetLayout(pages []PageLayout) {
	r.pages = pages
}

// Scroll recomputes visibility for the new offset and feeds the sink.
func (r *Reporter) Scroll(scrollTop, viewHeight float64) {
	reports := Visible(r.pages, scrollTop, viewHeight)

	seen := make(map[int]bool, len(reports))
	for _, rep := range reports {
		seen[rep.Page] = true
	}
	for page := range r.mounted {
		if !seen[page] {
			r.sink.UnregisterPage(page)
			delete(r.mounted, page)
		}
	}
	for _, rep := range reports {
		r.mounted[rep.Page] = true
		r.sink.ReportVisibility(rep.Page, rep.Ratio, rep.CenterDistance)
	}
}
