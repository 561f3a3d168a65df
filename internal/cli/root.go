package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "libris",
		Short:        "libris — a small book catalog kept in a text file",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, cleanup, err := loadWorkspace(opts, false)
			defer cleanup()
			if err != nil {
				return err
			}

			catalog, err := ws.openCatalog()
			if err != nil {
				return err
			}

			return tui.Run(tui.Deps{
				Catalog:     catalog,
				CatalogPath: ws.catalogPath,
				Logger:      ws.log,
				Debug:       opts.debug,
			})
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Catalog file (overrides libris.yaml and LIBRIS_FILE)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .libris/logs/libris.log")

	cmd.AddCommand(
		addCmd(opts),
		removeCmd(opts),
		searchCmd(opts),
		listCmd(opts),
		statusCmd(opts),
		validateCmd(opts),
		exportCmd(opts),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
