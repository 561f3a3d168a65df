package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/domain"
)

func addCmd(opts *rootOptions) *cobra.Command {
	var title, author string
	var year int

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
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

			b, err := catalog.Add(cmd.Context(), title, author, year)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatBook(b))
			return nil
		},
	}

	c.Flags().StringVarP(&title, "title", "t", "", "Book title (required)")
	c.Flags().StringVarP(&author, "author", "a", "", "Book author (required)")
	c.Flags().IntVarP(&year, "year", "y", 0, "Publication year (required)")

	_ = c.MarkFlagRequired("title")
	_ = c.MarkFlagRequired("author")
	_ = c.MarkFlagRequired("year")
	return c
}

func removeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a book by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ws, cleanup, err := loadWorkspace(opts, true)
			defer cleanup()
			if err != nil {
				return err
			}
			catalog, err := ws.openCatalog()
			if err != nil {
				return err
			}

			if err := catalog.Remove(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed book %d\n", id)
			return nil
		},
	}
}

func searchCmd(opts *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find books by title, author or exact year",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, cleanup, err := loadWorkspace(opts, true)
			defer cleanup()
			if err != nil {
				return err
			}
			catalog, err := ws.openCatalog()
			if err != nil {
				return err
			}

			books, err := catalog.Search(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printBooks(cmd.OutOrStdout(), books, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func listCmd(opts *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "list",
		Short: "List every book in catalog order",
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

			return printBooks(cmd.OutOrStdout(), catalog.List(), format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func statusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "status ID available|checked_out",
		Short:     "Change the lending status of a book",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.StatusAvailable), string(domain.StatusCheckedOut)},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ws, cleanup, err := loadWorkspace(opts, true)
			defer cleanup()
			if err != nil {
				return err
			}
			catalog, err := ws.openCatalog()
			if err != nil {
				return err
			}

			if err := catalog.ChangeStatus(cmd.Context(), id, args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Book %d is now %s\n", id, args[1])
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("book id must be a positive number, got %q", s)
	}
	return id, nil
}

func formatBook(b domain.Book) string {
	return fmt.Sprintf("%d: %s (%s, %d) - %s", b.ID, b.Title, b.Author, b.Year, b.Status)
}

func printBooks(w io.Writer, books []domain.Book, format string) error {
	switch format {
	case "json":
		if books == nil {
			books = []domain.Book{}
		}
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	case "pretty", "":
		if len(books) == 0 {
			fmt.Fprintln(w, "(no books found)")
			return nil
		}
		for _, b := range books {
			fmt.Fprintln(w, formatBook(b))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
