package ports

import "github.com/aalvaropc/libris/internal/domain"

// SnapshotStore writes a point-in-time copy of the catalog for backup or sharing.
type SnapshotStore interface {
	SaveSnapshot(snap domain.Snapshot) (id string, err error)
}
