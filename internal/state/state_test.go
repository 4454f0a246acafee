package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestComputeHash(t *testing.T) {
	// Create temp file with known content
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "test1.txt")
	file2 := filepath.Join(tmpDir, "test2.txt")
	file3 := filepath.Join(tmpDir, "test1_copy.txt")

	os.WriteFile(file1, []byte("Hello, World!"), 0644)
	os.WriteFile(file2, []byte("Different content"), 0644)
	os.WriteFile(file3, []byte("Hello, World!"), 0644) // Same as file1

	hash1, err := ComputeHash(file1)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	hash2, err := ComputeHash(file2)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	hash3, err := ComputeHash(file3)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	// Same content = same hash
	if hash1 != hash3 {
		t.Errorf("Same content should produce same hash: %s != %s", hash1, hash3)
	}

	// Different content = different hash
	if hash1 == hash2 {
		t.Errorf("Different content should produce different hash")
	}

	// Hash should be 32 hex chars
	if len(hash1) != 32 {
		t.Errorf("Hash should be 32 chars, got %d", len(hash1))
	}
}

func TestStateStore(t *testing.T) {
	// Use temp directory for state
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store, err := NewStateStore()
	if err != nil {
		t.Fatalf("NewStateStore failed: %v", err)
	}

	testHash := "abcdef1234567890abcdef1234567890"

	// GetPage returns 0 for unknown hash
	if page := store.GetPage(testHash); page != 0 {
		t.Errorf("Expected 0 for unknown hash, got %d", page)
	}

	// SetPage/GetPage roundtrip
	if err := store.SetPage(testHash, 12); err != nil {
		t.Fatalf("SetPage failed: %v", err)
	}
	if page := store.GetPage(testHash); page != 12 {
		t.Errorf("Expected 12, got %d", page)
	}

	// Clear removes entry
	if err := store.Clear(testHash); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if page := store.GetPage(testHash); page != 0 {
		t.Errorf("Expected 0 after clear, got %d", page)
	}
}

func TestHighlightsAndNotes(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store, err := NewStateStore()
	if err != nil {
		t.Fatalf("NewStateStore failed: %v", err)
	}

	testHash := "abcdef1234567890abcdef1234567890"

	store.SetPage(testHash, 3)
	store.AddHighlight(testHash, Highlight{Page: 3, Text: "important passage"})
	store.AddNote(testHash, "re-read this chapter")

	st := store.GetState(testHash)
	if st.Page != 3 {
		t.Errorf("Page = %d, want 3", st.Page)
	}
	if len(st.Highlights) != 1 || st.Highlights[0].Text != "important passage" {
		t.Errorf("Highlights = %+v", st.Highlights)
	}
	if len(st.Notes) != 1 || st.Notes[0] != "re-read this chapter" {
		t.Errorf("Notes = %+v", st.Notes)
	}

	// SetPage must not drop annotations.
	store.SetPage(testHash, 7)
	st = store.GetState(testHash)
	if st.Page != 7 || len(st.Highlights) != 1 || len(st.Notes) != 1 {
		t.Errorf("state after SetPage = %+v", st)
	}
}

func TestStateStorePersistence(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	testHash := "abcdef1234567890abcdef1234567890"

	// Create store and set state
	store1, err := NewStateStore()
	if err != nil {
		t.Fatalf("NewStateStore failed: %v", err)
	}
	store1.SetPage(testHash, 42)
	store1.AddNote(testHash, "persisted note")

	// Create new store instance - should load persisted data
	store2, err := NewStateStore()
	if err != nil {
		t.Fatalf("NewStateStore failed: %v", err)
	}
	st := store2.GetState(testHash)
	if st.Page != 42 {
		t.Errorf("Expected persisted page 42, got %d", st.Page)
	}
	if len(st.Notes) != 1 || st.Notes[0] != "persisted note" {
		t.Errorf("Notes not persisted: %+v", st.Notes)
	}
}

func TestCorruptStateFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "docview")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "documents.json"), []byte("not json"), 0644)

	store, err := NewStateStore()
	if err != nil {
		t.Fatalf("NewStateStore should tolerate corrupt state: %v", err)
	}
	if page := store.GetPage("anything"); page != 0 {
		t.Errorf("Expected empty state after corrupt load, got %d", page)
	}
}
