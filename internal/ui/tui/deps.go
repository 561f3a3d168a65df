package tui

import (
	"log/slog"

	"github.com/aalvaropc/libris/internal/usecase"
)

type Deps struct {
	Catalog     *usecase.Catalog
	CatalogPath string

	Logger *slog.Logger
	Debug  bool
}
