package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/infra/exportstore"
	"github.com/aalvaropc/libris/internal/usecase"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	var out string
	var name string

	c := &cobra.Command{
		Use:   "export",
		Short: "Write a timestamped JSON snapshot of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, cleanup, err := loadWorkspace(opts, true)
			defer cleanup()
			if err != nil {
				return err
			}
			catalog, err := ws.openCatalog()
			if err != nil {
				return err
			}

			store := ws.exports
			if strings.TrimSpace(out) != "" {
				cfg := ws.cfg
				abs, err := filepath.Abs(out)
				if err != nil {
					return fmt.Errorf("invalid output dir: %w", err)
				}
				cfg.Paths.ExportsDir = abs
				store = exportstore.NewJSONStore(ws.root, cfg)
			}

			id, err := usecase.NewExportCatalog(catalog, store).Execute(cmd.Context(), name, ws.catalogPath)
			if err != nil {
				return err
			}

			ws.log.Info("catalog.export", "id", id, "dir", store.Dir(), "books", catalog.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d books to %s\n", catalog.Len(), filepath.Join(store.Dir(), id+".json"))
			return nil
		},
	}

	c.Flags().StringVarP(&out, "out", "o", "", "Output directory (defaults to libris.paths.exports_dir)")
	c.Flags().StringVar(&name, "name", "", "Snapshot name (defaults to the catalog file name)")
	return c
}
