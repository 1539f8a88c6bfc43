package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/folio/internal/filter"
	"github.com/nikbrunner/folio/internal/storage"
)

func sampleState() filter.State {
	st := filter.DefaultState()
	st.Technologies = []string{"React", "AWS", "Terraform"}
	st.Categories = []string{"AI/ML"}
	st.Status = filter.StatusOngoing
	st.SearchQuery = "chatbot"
	st.Sort = filter.SortNewest
	return st
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "filters.json")

	s := storage.NewJSONStorage(statePath)
	if err := s.Save(sampleState()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		t.Fatal("state file was not created")
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if loaded.Status != filter.StatusOngoing {
		t.Errorf("expected status ongoing, got %q", loaded.Status)
	}
	if loaded.SearchQuery != "chatbot" {
		t.Errorf("expected search query 'chatbot', got %q", loaded.SearchQuery)
	}
	if len(loaded.Categories) != 1 || loaded.Categories[0] != "AI/ML" {
		t.Errorf("unexpected categories %v", loaded.Categories)
	}
	if loaded.Sort != filter.SortNewest {
		t.Errorf("expected sort newest, got %q", loaded.Sort)
	}
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "nonexistent.json")

	s := storage.NewJSONStorage(statePath)
	state, err := s.Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	if state.ActiveCount() != 0 || state.Status != filter.StatusAll {
		t.Errorf("expected cleared state for missing file, got %+v", state)
	}
}

func TestJSONStorage_LoadFillsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "filters.json")
	if err := os.WriteFile(statePath, []byte(`{"filters":{"categories":["Cloud"]}}`), 0644); err != nil {
		t.Fatal(err)
	}

	state, err := storage.NewJSONStorage(statePath).Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if state.Status != filter.StatusAll {
		t.Errorf("expected status all, got %q", state.Status)
	}
	if state.Technologies == nil {
		t.Error("expected technologies to be non-nil")
	}
	if state.ActiveCount() != 1 {
		t.Errorf("expected 1 active filter, got %d", state.ActiveCount())
	}
}

func TestJSONStorage_LoadMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "filters.json")
	if err := os.WriteFile(statePath, []byte(`{"filters":`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := storage.NewJSONStorage(statePath).Load(); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestJSONStorage_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	// Nested directory that doesn't exist
	statePath := filepath.Join(tmpDir, "nested", "dir", "filters.json")

	s := storage.NewJSONStorage(statePath)
	if err := s.Save(filter.DefaultState()); err != nil {
		t.Fatalf("failed to save with nested dir: %v", err)
	}

	if _, err := os.Stat(statePath); os.IsNotExist(err) {
		t.Fatal("state file was not created in nested directory")
	}
}

func TestJSONStorage_PreservesOrder(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "filters.json")

	s := storage.NewJSONStorage(statePath)
	if err := s.Save(sampleState()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	expected := []string{"React", "AWS", "Terraform"}
	for i, tech := range expected {
		if loaded.Technologies[i] != tech {
			t.Errorf("order not preserved: expected %q at position %d, got %q",
				tech, i, loaded.Technologies[i])
		}
	}
}
