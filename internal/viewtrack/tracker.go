package viewtrack

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
)

// Tracker owns the visibility map and the current view for one open
// document. Create one per document with New, release it with Close.
type Tracker struct {
	mu         sync.Mutex
	pages      map[int]PageVisibility
	view       CurrentView
	totalPages int

	subscribers map[int]func(CurrentView)
	nextSub     int

	latest atomic.Pointer[CurrentView]

	log *slog.Logger
}

// New returns a tracker positioned at page 1 of a 1-page document.
// The real page count arrives later via SetTotalPages.
func New() *Tracker {
	t := &Tracker{
		pages:       make(map[int]PageVisibility),
		view:        CurrentView{PageNumber: 1, TotalPages: 1},
		totalPages:  1,
		subscribers: make(map[int]func(CurrentView)),
		log:         slog.Default().With("component", "viewtrack"),
	}
	t.latest.Store(&t.view)
	return t
}

// ReportVisibility records the visibility of one page and re-derives the
// current view. Pages below 1 violate the caller contract and are dropped.
func (t *Tracker) ReportVisibility(page int, ratio, centerDistance float64) {
	if page < 1 {
		t.log.Warn("visibility report for invalid page", "page", page)
		return
	}
	if centerDistance < 0 || math.IsNaN(centerDistance) {
		centerDistance = math.Inf(1)
	}

	t.mu.Lock()
	t.pages[page] = PageVisibility{Ratio: clamp01(ratio), CenterDistance: centerDistance}
	t.recomputeLocked()
}

// UnregisterPage forgets an unmounted page. The best page is re-derived
// on the next report, not here: an unmount mid-scroll is followed within
// a frame by reports from the pages that replaced it, and recomputing
// from the incomplete map would publish a transient view.
func (t *Tracker) UnregisterPage(page int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pages, page)
}

// SetView jumps to a page directly, bypassing visibility signals.
// Unlike derived recomputation this always notifies: an explicit
// navigation is an intent, not a signal to be de-duplicated.
func (t *Tracker) SetView(page int, viewportProgress float64) {
	t.mu.Lock()
	page = clampPage(page, t.totalPages)
	t.view = CurrentView{
		PageNumber:       page,
		ViewportProgress: roundViewport(viewportProgress),
		DocumentProgress: documentProgress(page, t.totalPages),
		TotalPages:       t.totalPages,
	}
	t.notifyLocked()
}

// SetTotalPages records the document's page count and re-derives the
// current view against it, so progress never sits stale when the count
// arrives after the last scroll event.
func (t *Tracker) SetTotalPages(n int) {
	if n < 1 {
		n = 1
	}
	t.mu.Lock()
	t.totalPages = n
	t.recomputeLocked()
}

// Reset clears all visibility state and returns to page 1. Subscribers
// are notified only if the view actually moved.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.pages = make(map[int]PageVisibility)
	next := CurrentView{PageNumber: 1, TotalPages: t.totalPages}
	if next == t.view {
		t.view = next
		t.latest.Store(&next)
		t.mu.Unlock()
		return
	}
	t.view = next
	t.notifyLocked()
}

// UpdateFromScroll is the coarse fallback for surfaces that only know a
// scroll offset and a uniform page height.
func (t *Tracker) UpdateFromScroll(scrollTop, pageHeight float64, totalPages int) {
	if pageHeight <= 0 || totalPages <= 0 {
		return
	}
	page := clampPage(int(math.Floor(scrollTop/pageHeight))+1, totalPages)
	intra := (scrollTop - float64(page-1)*pageHeight) / pageHeight

	t.mu.Lock()
	t.totalPages = totalPages
	next := CurrentView{
		PageNumber:       page,
		ViewportProgress: roundViewport(intra),
		DocumentProgress: documentProgress(page, totalPages),
		TotalPages:       totalPages,
	}
	if next == t.view {
		t.mu.Unlock()
		return
	}
	t.view = next
	t.notifyLocked()
}

// Subscribe registers fn and immediately invokes it with the current
// view, so late subscribers are never blind to existing state. The
// returned function removes the subscription.
func (t *Tracker) Subscribe(fn func(CurrentView)) func() {
	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subscribers[id] = fn
	snapshot := t.view
	t.mu.Unlock()

	fn(snapshot)

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subscribers, id)
	}
}

// View returns the current view snapshot.
func (t *Tracker) View() CurrentView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Latest is the lock-free out-of-band read point. It holds the same
// snapshot View returns and is refreshed on every publish and reset.
func (t *Tracker) Latest() CurrentView {
	return *t.latest.Load()
}

// Close drops all subscribers and visibility state.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = make(map[int]func(CurrentView))
	t.pages = make(map[int]PageVisibility)
}

// recomputeLocked re-derives the view from the visibility map and
// publishes it if it changed. Called with t.mu held; releases it.
//
// Best-page selection is a strict two-level ordering: maximize ratio,
// then among exact ratio ties minimize center distance. A lower ratio
// never wins on center distance alone. The fallback of page 1 / ratio 0
// means an empty map yields page 1.
func (t *Tracker) recomputeLocked() {
	bestPage := 1
	best := PageVisibility{Ratio: 0, CenterDistance: math.Inf(1)}
	for page, v := range t.pages {
		if v.Ratio > best.Ratio || (v.Ratio == best.Ratio && v.CenterDistance < best.CenterDistance) {
			bestPage = page
			best = v
		}
	}

	page := clampPage(bestPage, t.totalPages)
	next := CurrentView{
		PageNumber:       page,
		ViewportProgress: roundViewport(best.Ratio),
		DocumentProgress: documentProgress(page, t.totalPages),
		TotalPages:       t.totalPages,
	}
	if next == t.view {
		t.mu.Unlock()
		return
	}
	t.view = next
	t.notifyLocked()
}

// notifyLocked publishes t.view and notifies subscribers. Called with
// t.mu held; releases it before invoking callbacks so a subscriber may
// call back into the tracker without deadlocking or corrupting a scan.
func (t *Tracker) notifyLocked() {
	v := t.view
	t.latest.Store(&v)
	subs := make([]func(CurrentView), 0, len(t.subscribers))
	for _, fn := range t.subscribers {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}
