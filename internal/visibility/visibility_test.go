package visibility

import (
	"math"
	"testing"
)

func TestLayout(t *testing.T) {
	pages := Layout([]float64{100, 200, 50})
	want := []PageLayout{{0, 100}, {100, 200}, {300, 50}}
	if len(pages) != len(want) {
		t.Fatalf("got %d pages, want %d", len(pages), len(want))
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("page %d = %+v, want %+v", i, pages[i], want[i])
		}
	}
}

func TestVisible(t *testing.T) {
	pages := Layout([]float64{100, 100, 100, 100})

	t.Run("page fully inside viewport", func(t *testing.T) {
		reports := Visible(pages, 50, 200)
		// Viewport covers [50, 250): half of page 1, all of page 2, half of page 3.
		if len(reports) != 3 {
			t.Fatalf("got %d reports, want 3: %+v", len(reports), reports)
		}
		if reports[0].Page != 1 || reports[0].Ratio != 0.5 {
			t.Errorf("page 1 report = %+v, want ratio 0.5", reports[0])
		}
		if reports[1].Page != 2 || reports[1].Ratio != 1.0 {
			t.Errorf("page 2 report = %+v, want ratio 1.0", reports[1])
		}
		if reports[1].CenterDistance != 0 {
			t.Errorf("page 2 center distance = %v, want 0", reports[1].CenterDistance)
		}
		if reports[2].Page != 3 || reports[2].Ratio != 0.5 {
			t.Errorf("page 3 report = %+v, want ratio 0.5", reports[2])
		}
	})

	t.Run("offscreen pages excluded", func(t *testing.T) {
		reports := Visible(pages, 0, 100)
		if len(reports) != 1 || reports[0].Page != 1 {
			t.Errorf("reports = %+v, want only page 1", reports)
		}
	})

	t.Run("zero viewport", func(t *testing.T) {
		if got := Visible(pages, 0, 0); got != nil {
			t.Errorf("reports = %+v, want nil", got)
		}
	})

	t.Run("center distance symmetric", func(t *testing.T) {
		reports := Visible(pages, 50, 200)
		if math.Abs(reports[0].CenterDistance-reports[2].CenterDistance) > 1e-9 {
			t.Errorf("distances %v and %v should match", reports[0].CenterDistance, reports[2].CenterDistance)
		}
	})
}

type recordingSink struct {
	reports      []Report
	unregistered []int
}

func (s *recordingSink) ReportVisibility(page int, ratio, dist float64) {
	s.reports = append(s.reports, Report{Page: page, Ratio: ratio, CenterDistance: dist})
}

func (s *recordingSink) UnregisterPage(page int) {
	s.unregistered = append(s.unregistered, page)
}

func TestReporterUnregistersDepartedPages(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(sink, Layout([]float64{100, 100, 100, 100}))

	r.Scroll(0, 150) // pages 1, 2 mounted
	if len(sink.unregistered) != 0 {
		t.Fatalf("unexpected unregisters: %v", sink.unregistered)
	}

	sink.reports = nil
	r.Scroll(220, 150) // pages 3, 4 mounted; 1 and 2 gone

	if len(sink.unregistered) != 2 {
		t.Fatalf("unregistered = %v, want pages 1 and 2", sink.unregistered)
	}
	got := map[int]bool{}
	for _, p := range sink.unregistered {
		got[p] = true
	}
	if !got[1] || !got[2] {
		t.Errorf("unregistered = %v, want pages 1 and 2", sink.unregistered)
	}
	for _, rep := range sink.reports {
		if rep.Page != 3 && rep.Page != 4 {
			t.Errorf("unexpected report for page %d", rep.Page)
		}
	}
}
