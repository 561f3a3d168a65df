package usecase

import (
	"context"
	"time"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

type ExportCatalog struct {
	catalog *Catalog
	store   ports.SnapshotStore
	now     func() time.Time
}

func NewExportCatalog(c *Catalog, store ports.SnapshotStore) *ExportCatalog {
	return &ExportCatalog{catalog: c, store: store, now: time.Now}
}

// Execute writes the current catalog as a snapshot named name and returns
// the snapshot id.
func (uc *ExportCatalog) Execute(ctx context.Context, name, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	snap := domain.Snapshot{
		Name:    name,
		Source:  source,
		TakenAt: uc.now().UTC(),
		Books:   uc.catalog.List(),
	}
	return uc.store.SaveSnapshot(snap)
}
