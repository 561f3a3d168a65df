package domain

// WorkspaceSpec describes a libris workspace to create.
type WorkspaceSpec struct {
	Root        string
	CatalogFile string // relative to Root; empty means the default
}
