package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/libris/internal/domain"
)

type memSnapshots struct {
	got []domain.Snapshot
}

func (m *memSnapshots) SaveSnapshot(s domain.Snapshot) (string, error) {
	m.got = append(m.got, s)
	return "snap-1", nil
}

func TestExportCatalog(t *testing.T) {
	c := openMem(t, &memStore{books: []domain.Book{
		{ID: 1, Title: "A", Author: "B", Year: 2000, Status: domain.StatusAvailable},
	}})
	snaps := &memSnapshots{}

	uc := NewExportCatalog(c, snaps)
	uc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	id, err := uc.Execute(context.Background(), "home", "library.txt")
	require.NoError(t, err)
	assert.Equal(t, "snap-1", id)

	require.Len(t, snaps.got, 1)
	assert.Equal(t, "home", snaps.got[0].Name)
	assert.Equal(t, "library.txt", snaps.got[0].Source)
	assert.Len(t, snaps.got[0].Books, 1)
	assert.Equal(t, 2024, snaps.got[0].TakenAt.Year())
}

func TestValidateCatalog(t *testing.T) {
	n, err := NewValidateCatalog(&memStore{books: []domain.Book{
		{ID: 1, Title: "A", Author: "B", Year: 2000, Status: domain.StatusAvailable},
		{ID: 2, Title: "C", Author: "D", Year: 2000, Status: domain.StatusAvailable},
	}}).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestValidateCatalogDuplicateIDs(t *testing.T) {
	_, err := NewValidateCatalog(&memStore{books: []domain.Book{
		{ID: 1, Title: "A", Author: "B", Year: 2000, Status: domain.StatusAvailable},
		{ID: 1, Title: "C", Author: "D", Year: 2000, Status: domain.StatusAvailable},
	}}).Execute(context.Background())
	assert.True(t, domain.IsKind(err, domain.KindMalformedRecord))
}
