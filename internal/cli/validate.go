package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/usecase"
)

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the catalog file parses (no changes are made)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, cleanup, err := loadWorkspace(opts, true)
			defer cleanup()
			if err != nil {
				return err
			}

			n, err := usecase.NewValidateCatalog(ws.store).Execute(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK (%d books in %s)\n", n, ws.catalogPath)
			return nil
		},
	}
}
