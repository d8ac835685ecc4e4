package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/timelex/timelex-cli/internal/models"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "config.json"))
	prefs, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if prefs.AI.UseCustom || prefs.AI.Endpoint != "" || prefs.DarkMode {
		t.Errorf("defaults not zero: %+v", prefs)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	s := NewStore(path)

	want := Preferences{
		AI: models.AIConfig{
			UseCustom: true,
			Endpoint:  "https://llm.example.com/v1",
			APIKey:    "k",
			Model:     "glm-4",
		},
		DarkMode: true,
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.AI != want.AI {
		t.Errorf("AI config = %+v, want %+v", got.AI, want.AI)
	}
	if !got.DarkMode {
		t.Error("DarkMode not persisted")
	}
	if got.Version != 1 {
		t.Errorf("Version = %d, want 1", got.Version)
	}
}

func TestSaveRestrictsFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewStore(path)
	if err := s.Save(Preferences{AI: models.AIConfig{APIKey: "secret"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 0600 (holds the API key)", info.Mode().Perm())
	}
}

func TestLoadCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path).Load(); err == nil {
		t.Error("Load() error = nil, want parse error for corrupt file")
	}
}
