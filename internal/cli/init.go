package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/infra/fsworkspace"
	"github.com/aalvaropc/libris/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var file string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a libris workspace (libris.yaml and an empty catalog)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := path
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				root = wd
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, file, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", "", "Directory to initialize (defaults to the working directory)")
	c.Flags().StringVar(&file, "catalog", "", "Catalog file name relative to the workspace (default library.txt)")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing libris.yaml")
	return c
}
