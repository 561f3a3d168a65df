package tui

import "github.com/aalvaropc/libris/internal/domain"

// opResult is what a catalog call hands back to the screen.
type opResult struct {
	act   action
	toast string
	books []domain.Book
	err   error
}
