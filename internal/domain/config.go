package domain

import (
	"fmt"
	"strings"
)

// Config represents the libris configuration loaded from libris.yaml.
type Config struct {
	Catalog CatalogConfig
	Paths   PathsConfig
}

type CatalogConfig struct {
	File        string
	MaxYear     int // 0 means the current year
	Sanitize    SanitizePolicy
	OnMalformed MalformedPolicy
}

type PathsConfig struct {
	ExportsDir string
}

// MalformedPolicy decides what loading does with a corrupt catalog line.
type MalformedPolicy string

const (
	MalformedFail MalformedPolicy = "fail"
	MalformedSkip MalformedPolicy = "skip"
)

func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch p := MalformedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return MalformedFail, nil
	case MalformedFail, MalformedSkip:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported on_malformed %q (expected fail|skip): %w", s, ErrInvalidConfig)
	}
}

// DefaultConfig provides sane defaults if libris.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{
			File:        "library.txt",
			Sanitize:    PolicyAllowList,
			OnMalformed: MalformedFail,
		},
		Paths: PathsConfig{
			ExportsDir: "exports",
		},
	}
}
