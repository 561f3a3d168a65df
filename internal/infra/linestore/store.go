package linestore

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

// maxLineBytes bounds a single catalog line on read. Lines written by Save
// are far shorter (see domain.MaxFieldBytes); the headroom is for files
// edited by hand.
const maxLineBytes = 1 << 20

// Store keeps the catalog in a text file, one id|title|author|year|status
// line per book.
type Store struct {
	path        string
	onMalformed domain.MalformedPolicy
	log         *slog.Logger
}

type Option func(*Store)

// WithMalformedPolicy chooses between failing on and skipping corrupt lines.
func WithMalformedPolicy(p domain.MalformedPolicy) Option {
	return func(s *Store) { s.onMalformed = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func New(path string, opts ...Option) *Store {
	s := &Store{
		path:        path,
		onMalformed: domain.MalformedFail,
		log:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.BookStore = (*Store)(nil)

func (s *Store) Path() string { return s.path }

// Load reads every book. A missing file is an empty catalog; blank lines are
// ignored.
func (s *Store) Load() ([]domain.Book, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Book{}, nil
		}
		return nil, &domain.OpError{
			Op:   "linestore.load",
			Kind: domain.KindPersistence,
			Path: s.path,
			Err:  errors.Join(domain.ErrPersistence, err),
		}
	}
	defer f.Close()

	books := []domain.Book{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		b, perr := domain.ParseLine(line)
		if perr != nil {
			if s.onMalformed == domain.MalformedSkip {
				s.log.Warn("linestore.load.skip_line", "path", s.path, "line", n, "err", perr)
				continue
			}
			return nil, &domain.OpError{
				Op:   "linestore.load",
				Kind: domain.KindMalformedRecord,
				Path: s.path,
				Line: n,
				Err:  perr,
			}
		}
		books = append(books, b)
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "linestore.load",
			Kind: domain.KindPersistence,
			Path: s.path,
			Err:  errors.Join(domain.ErrPersistence, err),
		}
	}

	s.log.Debug("linestore.loaded", "path", s.path, "books", len(books))
	return books, nil
}

// Save rewrites the whole file. The content goes to a temp file in the same
// directory which is then renamed over the catalog.
func (s *Store) Save(books []domain.Book) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return persistErr("linestore.mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return persistErr("linestore.write", dir, err)
	}
	tmpPath := tmp.Name()

	if err := writeBooks(tmp, books); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return persistErr("linestore.write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return persistErr("linestore.write", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return persistErr("linestore.rename", s.path, err)
	}

	s.log.Debug("linestore.saved", "path", s.path, "books", len(books))
	return nil
}

func writeBooks(f *os.File, books []domain.Book) error {
	w := bufio.NewWriter(f)
	for _, b := range books {
		if _, err := w.WriteString(b.Line() + "\n"); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

func persistErr(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindPersistence,
		Path: path,
		Err:  errors.Join(domain.ErrPersistence, err),
	}
}
