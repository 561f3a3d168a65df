package fsworkspace

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init lays out a workspace under spec.Root. libris.yaml is only rewritten
// with force; an existing catalog file is never touched.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	cfg := domain.DefaultConfig()
	if strings.TrimSpace(spec.CatalogFile) != "" {
		cfg.Catalog.File = spec.CatalogFile
	}

	dirs := []string{
		filepath.Join(root, cfg.Paths.ExportsDir),
		filepath.Join(root, ".libris", "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return initErr(d, err)
		}
	}

	if err := ensureGitignore(root, cfg); err != nil {
		return initErr(filepath.Join(root, ".gitignore"), err)
	}

	cfgPath := filepath.Join(root, "libris.yaml")
	if force || !exists(cfgPath) {
		b, err := renderConfig(cfg)
		if err != nil {
			return initErr(cfgPath, err)
		}
		if err := os.WriteFile(cfgPath, b, 0o644); err != nil {
			return initErr(cfgPath, err)
		}
	}

	catalog := cfg.Catalog.File
	if !filepath.IsAbs(catalog) {
		catalog = filepath.Join(root, catalog)
	}
	if !exists(catalog) {
		if err := os.MkdirAll(filepath.Dir(catalog), 0o755); err != nil {
			return initErr(catalog, err)
		}
		if err := os.WriteFile(catalog, nil, 0o644); err != nil {
			return initErr(catalog, err)
		}
	}

	return nil
}

type configFile struct {
	Libris struct {
		Catalog struct {
			File        string `yaml:"file"`
			MaxYear     int    `yaml:"max_year"`
			Sanitize    string `yaml:"sanitize"`
			OnMalformed string `yaml:"on_malformed"`
		} `yaml:"catalog"`
		Paths struct {
			ExportsDir string `yaml:"exports_dir"`
		} `yaml:"paths"`
	} `yaml:"libris"`
}

func renderConfig(cfg domain.Config) ([]byte, error) {
	var c configFile
	c.Libris.Catalog.File = cfg.Catalog.File
	c.Libris.Catalog.MaxYear = cfg.Catalog.MaxYear
	c.Libris.Catalog.Sanitize = string(cfg.Catalog.Sanitize)
	c.Libris.Catalog.OnMalformed = string(cfg.Catalog.OnMalformed)
	c.Libris.Paths.ExportsDir = cfg.Paths.ExportsDir

	var buf bytes.Buffer
	buf.WriteString("# libris workspace. max_year 0 means the current year.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func initErr(path string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init",
		Kind: domain.KindPersistence,
		Path: path,
		Err:  errors.Join(domain.ErrPersistence, err),
	}
}

func ensureGitignore(root string, cfg domain.Config) error {
	const header = "# libris"
	entries := []string{
		".libris/",
		strings.TrimSuffix(cfg.Paths.ExportsDir, "/") + "/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
