package ports

import "github.com/aalvaropc/libris/internal/domain"

// BookStore loads and persists the whole catalog in one go.
type BookStore interface {
	Load() ([]domain.Book, error)
	Save(books []domain.Book) error
}
