package usecase

import (
	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root, catalogFile string, force bool) error {
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root, CatalogFile: catalogFile}, force)
}
