package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

// Catalog is the in-memory, insertion-ordered book list backed by a
// BookStore. Every successful mutation rewrites the store; a failed write
// rolls the in-memory change back so memory and disk agree.
type Catalog struct {
	store   ports.BookStore
	policy  domain.SanitizePolicy
	maxYear int
	now     func() time.Time
	log     *slog.Logger

	books []domain.Book
}

type CatalogOption func(*Catalog)

// WithSanitizePolicy selects how titles, authors and queries are cleaned.
func WithSanitizePolicy(p domain.SanitizePolicy) CatalogOption {
	return func(c *Catalog) {
		if p != "" {
			c.policy = p
		}
	}
}

// WithMaxYear fixes the latest accepted year. Zero keeps the current year.
func WithMaxYear(y int) CatalogOption {
	return func(c *Catalog) { c.maxYear = y }
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) CatalogOption {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(l *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

// OpenCatalog loads the full catalog from store.
func OpenCatalog(store ports.BookStore, opts ...CatalogOption) (*Catalog, error) {
	c := &Catalog{
		store:  store,
		policy: domain.PolicyAllowList,
		now:    time.Now,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	books, err := store.Load()
	if err != nil {
		c.log.Error("catalog.load.failed", "err", err)
		return nil, err
	}
	c.books = books

	c.log.Info("catalog.loaded", "books", len(books))
	return c, nil
}

// Rules returns the validation rules in effect right now.
func (c *Catalog) Rules() domain.Rules {
	return domain.Rules{
		Years:  domain.BoundsFor(c.maxYear, c.now()),
		Policy: c.policy,
	}
}

// Add validates the input, assigns the next id and persists the new book.
func (c *Catalog) Add(ctx context.Context, title, author string, year int) (domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return domain.Book{}, err
	}

	b, err := domain.NewBook(c.nextID(), title, author, year, c.Rules())
	if err != nil {
		return domain.Book{}, err
	}

	c.books = append(c.books, b)
	if err := c.save("catalog.add"); err != nil {
		c.books = c.books[:len(c.books)-1]
		return domain.Book{}, err
	}

	c.log.Info("catalog.add", "id", b.ID, "year", b.Year)
	return b, nil
}

// Remove deletes the book with id.
func (c *Catalog) Remove(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	i := c.indexOf(id)
	if i < 0 {
		return domain.NotFound("catalog.remove", id)
	}

	prev := c.books
	next := make([]domain.Book, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)

	c.books = next
	if err := c.save("catalog.remove"); err != nil {
		c.books = prev
		return err
	}

	c.log.Info("catalog.remove", "id", id)
	return nil
}

// ChangeStatus sets the lending status of the book with id.
func (c *Catalog) ChangeStatus(ctx context.Context, id int, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	st, err := domain.ParseStatus(status)
	if err != nil {
		return err
	}

	i := c.indexOf(id)
	if i < 0 {
		return domain.NotFound("catalog.change_status", id)
	}

	prev := c.books[i].Status
	c.books[i].Status = st
	if err := c.save("catalog.change_status"); err != nil {
		c.books[i].Status = prev
		return err
	}

	c.log.Info("catalog.change_status", "id", id, "from", string(prev), "to", string(st))
	return nil
}

// Search returns, in catalog order, every book whose title or author
// contains the sanitized query case-insensitively, or whose year equals it.
func (c *Catalog) Search(query string) ([]domain.Book, error) {
	q, err := c.policy.Sanitize(query)
	if err != nil {
		return nil, err
	}

	out := []domain.Book{}
	for _, b := range c.books {
		if b.Matches(q) {
			out = append(out, b)
		}
	}

	c.log.Debug("catalog.search", "query", q, "hits", len(out))
	return out, nil
}

// List returns a copy of every book in catalog order.
func (c *Catalog) List() []domain.Book {
	out := make([]domain.Book, len(c.books))
	copy(out, c.books)
	return out
}

// Get returns the book with id.
func (c *Catalog) Get(id int) (domain.Book, error) {
	i := c.indexOf(id)
	if i < 0 {
		return domain.Book{}, domain.NotFound("catalog.get", id)
	}
	return c.books[i], nil
}

func (c *Catalog) Len() int { return len(c.books) }

// nextID is one past the highest id in use, so ids freed by Remove are never
// handed out again while a higher id exists.
func (c *Catalog) nextID() int {
	hi := 0
	for _, b := range c.books {
		if b.ID > hi {
			hi = b.ID
		}
	}
	return hi + 1
}

func (c *Catalog) indexOf(id int) int {
	for i, b := range c.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) save(op string) error {
	err := c.store.Save(c.books)
	if err == nil {
		return nil
	}

	c.log.Error(op+".save_failed", "err", err)
	if !errors.Is(err, domain.ErrPersistence) {
		err = errors.Join(domain.ErrPersistence, err)
	}
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindPersistence,
		Err:  err,
	}
}
