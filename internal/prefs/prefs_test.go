package prefs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/framewatch/internal/config"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != (Prefs{}) {
		t.Fatalf("Load = %#v, want empty", p)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "framewatch")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Nord\"\ninterval_ms = 2500\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Nord" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Nord")
	}
	if !p.IntervalSet || p.Interval != 2500*time.Millisecond {
		t.Fatalf("Interval = %v (set=%v), want 2.5s", p.Interval, p.IntervalSet)
	}
}

func TestSave_RoundTripsZeroInterval(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	if err := Save(prefsFile, Prefs{Theme: "Nord", IntervalSet: true}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Nord" || !loaded.IntervalSet || loaded.Interval != 0 {
		t.Fatalf("loaded = %#v, want Nord with polling off", loaded)
	}
}

func TestSave_OmitsUnsetInterval(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(prefsFile, Prefs{Theme: "Dracula"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, _ := Load(prefsFile)
	if loaded.IntervalSet {
		t.Fatalf("IntervalSet = true, want false")
	}
}

func TestLoad_InvalidTOMLIsEmpty(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p != (Prefs{}) {
		t.Fatalf("Load = %#v, want empty", p)
	}
}

func TestApply(t *testing.T) {
	cfg := config.Default()
	cfg.Interval = time.Second

	if got := (Prefs{}).Apply(cfg); got != cfg {
		t.Fatalf("empty prefs changed config: %#v", got)
	}

	got := Prefs{Theme: "Nord", IntervalSet: true}.Apply(cfg)
	if got.Theme != "Nord" || got.Interval != 0 {
		t.Fatalf("Apply = theme %q interval %v, want Nord/0", got.Theme, got.Interval)
	}
}
