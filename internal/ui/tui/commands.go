package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aalvaropc/libris/internal/usecase"
)

// Catalog calls run inline from Update. They only touch a local file, and
// keeping them on the update loop means one operation finishes before the
// next key is read.

const opTimeout = 10 * time.Second

func doAdd(c *usecase.Catalog, log *slog.Logger, title, author string, year int) opResult {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	b, err := c.Add(ctx, title, author, year)
	if err != nil {
		log.Warn("tui.add.failed", "err", err)
		return opResult{act: actionAdd, err: err}
	}
	return opResult{act: actionAdd, toast: fmt.Sprintf("Added book %d: %s", b.ID, b.Title)}
}

func doRemove(c *usecase.Catalog, log *slog.Logger, id int) opResult {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.Remove(ctx, id); err != nil {
		log.Warn("tui.remove.failed", "id", id, "err", err)
		return opResult{act: actionRemove, err: err}
	}
	return opResult{act: actionRemove, toast: fmt.Sprintf("Removed book %d", id)}
}

func doChangeStatus(c *usecase.Catalog, log *slog.Logger, id int, status string) opResult {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.ChangeStatus(ctx, id, status); err != nil {
		log.Warn("tui.status.failed", "id", id, "status", status, "err", err)
		return opResult{act: actionStatus, err: err}
	}
	return opResult{act: actionStatus, toast: fmt.Sprintf("Book %d is now %s", id, status)}
}

func doSearch(c *usecase.Catalog, query string) opResult {
	books, err := c.Search(query)
	return opResult{act: actionSearch, books: books, err: err}
}

func doList(c *usecase.Catalog) opResult {
	return opResult{act: actionList, books: c.List()}
}
