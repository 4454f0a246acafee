// Package state persists per-document reading state between sessions.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	stateFileName = "documents.json"
	hashBytes     = 8192 // First 8KB for content hash
)

// Highlight marks a passage on a page.
type Highlight struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// DocumentState stores reading state for a single document.
type DocumentState struct {
	Page       int         `json:"page"`
	Highlights []Highlight `json:"highlights,omitempty"`
	Notes      []string    `json:"notes,omitempty"`
}

// StateStore manages persistent per-document state, keyed by content hash.
type StateStore struct {
	path string
	data map[string]DocumentState
	mu   sync.RWMutex
}

// NewStateStore creates or loads state from XDG_STATE_HOME/docview/
func NewStateStore() (*StateStore, error) {
	dir := getStateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	store := &StateStore{
		path: filepath.Join(dir, stateFileName),
		data: make(map[string]DocumentState),
	}
	if err := store.load(); err != nil {
		// Non-fatal - start with empty state
		store.data = make(map[string]DocumentState)
	}
	return store, nil
}

// getStateDir returns XDG_STATE_HOME/docview or ~/.local/state/docview
func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "docview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "docview")
}

// ComputeHash generates content hash for file identity
func ComputeHash(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, hashBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	hash := sha256.Sum256(buf[:n])
	return hex.EncodeToString(hash[:16]), nil // First 16 bytes = 32 hex chars
}

// GetState returns saved state for a document, or the zero state.
func (s *StateStore) GetState(hash string) DocumentState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[hash]
}

// GetPage returns the saved page for a document, or 0 if not found.
func (s *StateStore) GetPage(hash string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[hash].Page
}

// SetPage saves the reading position, preserving highlights and notes.
func (s *StateStore) SetPage(hash string, page int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.data[hash]
	st.Page = page
	s.data[hash] = st
	return s.save()
}

// AddHighlight appends a highlight to a document's state.
func (s *StateStore) AddHighlight(hash string, h Highlight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.data[hash]
	st.Highlights = append(st.Highlights, h)
	s.data[hash] = st
	return s.save()
}

// AddNote appends a note to a document's state.
func (s *StateStore) AddNote(hash string, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.data[hash]
	st.Notes = append(st.Notes, note)
	s.data[hash] = st
	return s.save()
}

// Clear removes saved state for a document.
func (s *StateStore) Clear(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, hash)
	return s.save()
}

func (s *StateStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

func (s *StateStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
