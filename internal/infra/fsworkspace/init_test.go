package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/infra/workspacefinder"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "libris.yaml"))
	assertFileExists(t, filepath.Join(tmp, "library.txt"))
	assertFileExists(t, filepath.Join(tmp, "exports"))
	assertFileExists(t, filepath.Join(tmp, ".libris", "logs"))

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestInitializer_Init_CustomCatalogFile(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp, CatalogFile: "data/books.txt"}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "data", "books.txt"))
	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Catalog.File != "data/books.txt" {
		t.Fatalf("expected custom file in config, got %q", cfg.Catalog.File)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "libris.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing libris.yaml: %v", err)
	}
	catalog := filepath.Join(tmp, "library.txt")
	if err := os.WriteFile(catalog, []byte("1|A|B|2000|available\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read libris.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected libris.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read libris.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "libris:") {
		t.Fatalf("expected libris.yaml overwritten, got %q", string(b))
	}

	b, err = os.ReadFile(catalog)
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	if string(b) != "1|A|B|2000|available\n" {
		t.Fatalf("expected catalog untouched even with force, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
