package workspacefinder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/libris/internal/domain"
)

// ConfigFile is the name of the workspace marker and config file.
const ConfigFile = "libris.yaml"

// EnvCatalogFile overrides the catalog path from the environment or .env.
const EnvCatalogFile = "LIBRIS_FILE"

// LoadConfig loads libris.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  errors.Join(domain.ErrInvalidConfig, err),
		}
	}

	// Apply parsed values on top of defaults.
	c := y.Libris.Catalog
	if c.File != "" {
		cfg.Catalog.File = c.File
	}
	if c.MaxYear != nil {
		if *c.MaxYear != 0 && *c.MaxYear < domain.EarliestYear {
			return cfg, invalidField(path, "libris.catalog.max_year",
				fmt.Errorf("%d is before %d: %w", *c.MaxYear, domain.EarliestYear, domain.ErrInvalidConfig))
		}
		cfg.Catalog.MaxYear = *c.MaxYear
	}
	if c.Sanitize != "" {
		p, err := domain.ParseSanitizePolicy(c.Sanitize)
		if err != nil {
			return cfg, invalidField(path, "libris.catalog.sanitize", err)
		}
		cfg.Catalog.Sanitize = p
	}
	if c.OnMalformed != "" {
		p, err := domain.ParseMalformedPolicy(c.OnMalformed)
		if err != nil {
			return cfg, invalidField(path, "libris.catalog.on_malformed", err)
		}
		cfg.Catalog.OnMalformed = p
	}
	if y.Libris.Paths.ExportsDir != "" {
		cfg.Paths.ExportsDir = y.Libris.Paths.ExportsDir
	}

	return cfg, nil
}

// LoadEnv reads <root>/.env if present, without overriding variables that
// are already set, and applies LIBRIS_FILE to cfg.
func LoadEnv(root string, cfg domain.Config) (domain.Config, error) {
	path := filepath.Join(root, ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadenv",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  errors.Join(domain.ErrInvalidConfig, err),
		}
	}

	if f := os.Getenv(EnvCatalogFile); f != "" {
		cfg.Catalog.File = f
	}
	return cfg, nil
}

// CatalogPath resolves the catalog file against the workspace root.
func CatalogPath(root string, cfg domain.Config) string {
	if filepath.IsAbs(cfg.Catalog.File) {
		return cfg.Catalog.File
	}
	return filepath.Join(root, cfg.Catalog.File)
}

func invalidField(path, field string, err error) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %w", field, err),
	}
}

type yamlConfig struct {
	Libris struct {
		Catalog struct {
			File        string `yaml:"file"`
			MaxYear     *int   `yaml:"max_year"`
			Sanitize    string `yaml:"sanitize"`
			OnMalformed string `yaml:"on_malformed"`
		} `yaml:"catalog"`

		Paths struct {
			ExportsDir string `yaml:"exports_dir"`
		} `yaml:"paths"`
	} `yaml:"libris"`
}
