// Package viewtrack derives the page currently being read from raw
// per-page visibility signals and publishes it to subscribers.
package viewtrack

import (
	"fmt"
	"math"
)

// PageVisibility is the last-reported visibility of one mounted page.
type PageVisibility struct {
	// Ratio is the fraction of the page's area inside the viewport, 0..1.
	Ratio float64
	// CenterDistance is the pixel distance between the page's center and
	// the viewport's center. math.Inf(1) when the caller has no geometry.
	CenterDistance float64
}

// CurrentView is the published reading position. Values are copies;
// mutating one never affects the tracker.
type CurrentView struct {
	PageNumber       int
	ViewportProgress float64 // visible fraction of the current page, 10% steps
	DocumentProgress float64 // position through the document, 1% steps
	TotalPages       int
}

// String renders the view for status displays.
func (v CurrentView) String() string {
	return fmt.Sprintf("Page %d of %d (%d%%)", v.PageNumber, v.TotalPages, int(math.Round(v.DocumentProgress*100)))
}

// roundViewport rounds a ratio to the nearest 10% step, with exact
// halves rounding down (0.55 becomes 0.5, not 0.6).
func roundViewport(r float64) float64 {
	return math.Ceil(clamp01(r)*10-0.5) / 10
}

// documentProgress maps a page to normalized position through the
// document: 0 at page 1, 1 at the last page, rounded to 1% steps.
// Single-page documents have no progression to report.
func documentProgress(page, totalPages int) float64 {
	if totalPages <= 1 {
		return 0
	}
	return math.Round(float64(page-1)/float64(totalPages-1)*100) / 100
}

func clamp01(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
