package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/infra/exportstore"
	"github.com/aalvaropc/libris/internal/infra/linestore"
	"github.com/aalvaropc/libris/internal/infra/logger"
	"github.com/aalvaropc/libris/internal/infra/workspacefinder"
	"github.com/aalvaropc/libris/internal/ports"
	"github.com/aalvaropc/libris/internal/usecase"
)

var locator ports.WorkspaceLocator = workspacefinder.NewFinder()

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	workspace string
	file      string
	debug     bool
}

type workspaceCtx struct {
	root        string
	cfg         domain.Config
	catalogPath string
	log         *slog.Logger

	store   *linestore.Store
	exports *exportstore.JSONStore
}

// loadWorkspace resolves the workspace, loads its config and starts the
// file logger. The returned cleanup closes the log file.
func loadWorkspace(opts *rootOptions, stderrLogs bool) (*workspaceCtx, func(), error) {
	root, err := resolveWorkspaceRoot(opts.workspace)
	if err != nil {
		return nil, func() {}, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, func() {}, err
	}
	cfg, err = workspacefinder.LoadEnv(root, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	if f := strings.TrimSpace(opts.file); f != "" {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, func() {}, fmt.Errorf("invalid catalog path: %w", err)
		}
		cfg.Catalog.File = abs
	}

	cleanup := func() {}
	if c, lerr := logger.Setup(logger.Config{Root: root, Debug: opts.debug, Stderr: stderrLogs}); lerr == nil {
		cleanup = func() { _ = c() }
	}
	log := logger.L()

	catalogPath := workspacefinder.CatalogPath(root, cfg)
	log.Debug("workspace.loaded", "root", root, "catalog", catalogPath)

	return &workspaceCtx{
		root:        root,
		cfg:         cfg,
		catalogPath: catalogPath,
		log:         log,
		store: linestore.New(catalogPath,
			linestore.WithMalformedPolicy(cfg.Catalog.OnMalformed),
			linestore.WithLogger(log),
		),
		exports: exportstore.NewJSONStore(root, cfg),
	}, cleanup, nil
}

func (ws *workspaceCtx) openCatalog() (*usecase.Catalog, error) {
	return usecase.OpenCatalog(ws.store,
		usecase.WithSanitizePolicy(ws.cfg.Catalog.Sanitize),
		usecase.WithMaxYear(ws.cfg.Catalog.MaxYear),
		usecase.WithLogger(ws.log),
	)
}

// resolveWorkspaceRoot prefers the explicit flag, then the nearest
// libris.yaml above the working directory, then the working directory.
func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := locator.FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return wd, nil
		}
		return "", err
	}
	return root, nil
}
