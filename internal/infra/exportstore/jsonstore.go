package exportstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

const defaultExportsDir = "exports"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type JSONStore struct {
	rootDir    string
	exportsDir string
	now        func() time.Time
}

type Option func(*JSONStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.ExportsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultExportsDir
	}

	s := &JSONStore{
		rootDir:    root,
		exportsDir: dir,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SnapshotStore = (*JSONStore)(nil)

// Dir is where snapshots are written.
func (s *JSONStore) Dir() string {
	if filepath.IsAbs(s.exportsDir) {
		return s.exportsDir
	}
	return filepath.Join(s.rootDir, s.exportsDir)
}

func (s *JSONStore) SaveSnapshot(snap domain.Snapshot) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", persistErr("exportstore.mkdir", dir, err)
	}

	ts := snap.TakenAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()
	snap.TakenAt = ts

	if snap.Books == nil {
		snap.Books = []domain.Book{}
	}

	namePart := snap.Name
	if strings.TrimSpace(namePart) == "" {
		namePart = strings.TrimSuffix(filepath.Base(snap.Source), filepath.Ext(snap.Source))
	}
	slug := slugify(namePart)
	if slug == "" {
		slug = "catalog"
	}

	base := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	id, path := uniqueName(dir, base)

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", persistErr("exportstore.marshal", path, err)
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", persistErr("exportstore.write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", persistErr("exportstore.rename", path, err)
	}

	return id, nil
}

// Load reads a snapshot previously written by SaveSnapshot.
func (s *JSONStore) Load(id string) (domain.Snapshot, error) {
	path := filepath.Join(s.Dir(), id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindPersistence
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.Snapshot{}, &domain.OpError{Op: "exportstore.load", Kind: kind, Path: path, Err: err}
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return domain.Snapshot{}, &domain.OpError{
			Op:   "exportstore.load",
			Kind: domain.KindMalformedRecord,
			Path: path,
			Err:  errors.Join(domain.ErrMalformedRecord, err),
		}
	}
	return snap, nil
}

// uniqueName appends _2, _3, ... when base is already taken.
func uniqueName(dir, base string) (id, path string) {
	id = base
	for n := 2; ; n++ {
		path = filepath.Join(dir, id+".json")
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return id, path
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func persistErr(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindPersistence,
		Path: path,
		Err:  errors.Join(domain.ErrPersistence, err),
	}
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			// any other char -> dash
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
