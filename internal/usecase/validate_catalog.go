package usecase

import (
	"context"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

// ValidateCatalog parses the whole backing file without changing it.
type ValidateCatalog struct {
	store ports.BookStore
}

func NewValidateCatalog(store ports.BookStore) *ValidateCatalog {
	return &ValidateCatalog{store: store}
}

// Execute returns the number of books read, or the first load error.
// Duplicate ids are reported as malformed since lookups by id would be
// ambiguous.
func (uc *ValidateCatalog) Execute(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	books, err := uc.store.Load()
	if err != nil {
		return 0, err
	}

	seen := make(map[int]bool, len(books))
	for _, b := range books {
		if seen[b.ID] {
			return 0, &domain.OpError{
				Op:     "catalog.validate",
				Kind:   domain.KindMalformedRecord,
				BookID: b.ID,
				Err:    domain.ErrMalformedRecord,
			}
		}
		seen[b.ID] = true
	}
	return len(books), nil
}
