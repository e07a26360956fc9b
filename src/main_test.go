package main

import (
	"os"
	"path/filepath"
	"testing"

	"lifeterm/src/config"
)

func TestSeedTemplate(t *testing.T) {
	cfg := config.Default()
	tmpl, err := seedTemplate(cfg)
	if err != nil || tmpl == nil || tmpl.Name != "sample" {
		t.Fatalf("default pattern: %v %v", tmpl, err)
	}

	cfg.Pattern = ""
	if tmpl, err = seedTemplate(cfg); err != nil || tmpl != nil {
		t.Fatalf("no pattern: %v %v", tmpl, err)
	}

	cfg.Pattern = "nope"
	if _, err = seedTemplate(cfg); err == nil {
		t.Fatal("expected error for unknown pattern")
	}

	path := filepath.Join(t.TempDir(), "glider.cells")
	if err := os.WriteFile(path, []byte("!Name: Glider\n.O.\n..O\nOOO\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.PatternFile = path
	if tmpl, err = seedTemplate(cfg); err != nil || tmpl.Name != "Glider" || len(tmpl.Cells) != 5 {
		t.Fatalf("pattern file: %v %v", tmpl, err)
	}
}

func TestNewUniverseCentersTemplate(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 10, 10
	tmpl, err := seedTemplate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	u, err := newUniverse(cfg, tmpl, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer u.Close()
	if st := u.Status(); st.LiveCells != len(tmpl.Cells) {
		t.Fatalf("live cells = %d, want %d", st.LiveCells, len(tmpl.Cells))
	}
	if err := u.SettleTemplate("glider"); err != nil {
		t.Fatalf("built-in templates were not added: %v", err)
	}
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if isTerminal(f) {
		t.Fatal("regular file reported as terminal")
	}
	null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Skip(err)
	}
	defer null.Close()
	if isTerminal(null) {
		t.Fatal("null device reported as terminal")
	}
}
