package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/libris/internal/domain"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")

	// Partial config (no paths, no policies)
	writeConfig(t, root, "libris:\n  catalog:\n    max_year: 2024\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Catalog.MaxYear != 2024 {
		t.Fatalf("expected max_year=2024, got=%d", cfg.Catalog.MaxYear)
	}
	if cfg.Catalog.File != "library.txt" {
		t.Fatalf("expected file=library.txt, got=%s", cfg.Catalog.File)
	}
	if cfg.Catalog.Sanitize != domain.PolicyAllowList {
		t.Fatalf("expected allowlist, got=%s", cfg.Catalog.Sanitize)
	}
	if cfg.Catalog.OnMalformed != domain.MalformedFail {
		t.Fatalf("expected fail, got=%s", cfg.Catalog.OnMalformed)
	}
	if cfg.Paths.ExportsDir != "exports" {
		t.Fatalf("expected exports dir=exports, got=%s", cfg.Paths.ExportsDir)
	}
}

func TestLoadConfig_FullConfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `libris:
  catalog:
    file: data/books.txt
    sanitize: blocklist
    on_malformed: skip
  paths:
    exports_dir: backups
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Catalog.File != "data/books.txt" {
		t.Fatalf("unexpected file %q", cfg.Catalog.File)
	}
	if cfg.Catalog.Sanitize != domain.PolicyBlockList {
		t.Fatalf("unexpected sanitize %q", cfg.Catalog.Sanitize)
	}
	if cfg.Catalog.OnMalformed != domain.MalformedSkip {
		t.Fatalf("unexpected on_malformed %q", cfg.Catalog.OnMalformed)
	}
	if cfg.Paths.ExportsDir != "backups" {
		t.Fatalf("unexpected exports dir %q", cfg.Paths.ExportsDir)
	}
	if got := CatalogPath(root, cfg); got != filepath.Join(root, "data", "books.txt") {
		t.Fatalf("unexpected catalog path %q", got)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"sanitize":     "libris:\n  catalog:\n    sanitize: nothing\n",
		"on_malformed": "libris:\n  catalog:\n    on_malformed: explode\n",
		"max_year":     "libris:\n  catalog:\n    max_year: 500\n",
		"yaml":         "libris: [\n",
	}
	for name, content := range cases {
		root := t.TempDir()
		writeConfig(t, root, content)

		_, err := LoadConfig(root)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("%s: expected KindInvalidConfig, got %v", name, err)
		}
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if cfg.Catalog.File != "library.txt" {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}

func TestLoadEnv_FileOverride(t *testing.T) {
	root := t.TempDir()
	// godotenv never overrides a variable that is set, even to "".
	t.Setenv(EnvCatalogFile, "")
	_ = os.Unsetenv(EnvCatalogFile)
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("LIBRIS_FILE=from-env.txt\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadEnv(root, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("LoadEnv error: %v", err)
	}
	if cfg.Catalog.File != "from-env.txt" {
		t.Fatalf("expected override from .env, got %q", cfg.Catalog.File)
	}
}

func TestLoadEnv_ProcessEnvWins(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvCatalogFile, "/abs/books.txt")
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("LIBRIS_FILE=from-env.txt\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadEnv(root, domain.DefaultConfig())
	if err != nil {
		t.Fatalf("LoadEnv error: %v", err)
	}
	if CatalogPath(root, cfg) != "/abs/books.txt" {
		t.Fatalf("expected absolute override, got %q", cfg.Catalog.File)
	}
}

func TestLoadEnv_NoDotEnv(t *testing.T) {
	t.Setenv(EnvCatalogFile, "")
	cfg, err := LoadEnv(t.TempDir(), domain.DefaultConfig())
	if err != nil {
		t.Fatalf("LoadEnv error: %v", err)
	}
	if cfg.Catalog.File != "library.txt" {
		t.Fatalf("expected default file, got %q", cfg.Catalog.File)
	}
}
