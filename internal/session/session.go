// Package session wires the view tracker to the state store for one
// open document: restore the saved page on open, persist page changes
// while reading.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/docview/docview/internal/viewtrack"
)

// DefaultDebounce is how long a page change must hold before it is
// written out. Continuous scrolling produces a burst of changes; only
// the position the reader settles on is worth a write.
const DefaultDebounce = 500 * time.Millisecond

// Store is the persistence surface a session needs. *state.StateStore
// satisfies it.
type Store interface {
	GetPage(hash string) int
	SetPage(hash string, page int) error
}

// Session persists one document's reading position.
type Session struct {
	store    Store
	hash     string
	debounce time.Duration
	log      *slog.Logger

	mu        sync.Mutex
	timer     *time.Timer
	pending   int // page awaiting persist, 0 = none
	lastSaved int
	restored  bool
	closed    bool
	unsub     func()
}

// New attaches a session to a tracker. Nothing is persisted until
// MarkRestored is called: notifications fired while the surface is
// still scrolling to the saved position are echoes of the restore, not
// reading activity.
func New(tracker *viewtrack.Tracker, store Store, hash string) *Session {
	return NewWithDebounce(tracker, store, hash, DefaultDebounce)
}

// NewWithDebounce is New with an explicit debounce interval.
func NewWithDebounce(tracker *viewtrack.Tracker, store Store, hash string, debounce time.Duration) *Session {
	s := &Session{
		store:    store,
		hash:     hash,
		debounce: debounce,
		log:      slog.Default().With("component", "session"),
	}
	s.lastSaved = store.GetPage(hash)
	s.unsub = tracker.Subscribe(s.onView)
	return s
}

// RestorePage returns the page to scroll to on open, clamped into
// [1, totalPages]. A stored page beyond the document's current page
// count (the file shrank, or state belongs to an older revision) is
// clamped rather than rejected.
func (s *Session) RestorePage(totalPages int) int {
	page := s.store.GetPage(s.hash)
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// MarkRestored ends the restore phase; later view changes are persisted.
func (s *Session) MarkRestored() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restored = true
}

// onView receives every tracker notification. Only the page number
// matters here; progress fields are display concerns.
func (s *Session) onView(v viewtrack.CurrentView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.restored || s.closed {
		return
	}
	if v.PageNumber == s.lastSaved && s.pending == 0 {
		return
	}
	s.pending = v.PageNumber
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
}

func (s *Session) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

func (s *Session) flushLocked() {
	if s.pending == 0 || s.pending == s.lastSaved {
		s.pending = 0
		return
	}
	if err := s.store.SetPage(s.hash, s.pending); err != nil {
		// Persistence failure never propagates into the tracker.
		s.log.Warn("failed to save reading position", "page", s.pending, "error", err)
	} else {
		s.lastSaved = s.pending
	}
	s.pending = 0
}

// Close cancels any pending debounced write, flushes the last unsaved
// position, and detaches from the tracker.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.flushLocked()
	unsub := s.unsub
	s.unsub = nil
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
