package main

import (
	"bookforge/internal/manuscript"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // this is better for readability
		Use:     "import [file]",
		GroupID: "generate",
		Short:   "Import an external manuscript as a book",
		Long: `Parses an externally written manuscript (JSON export or markdown draft)
into the book format, ready for illustration or podcast review.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			book := manuscript.Parse(string(raw))
			app.logger.Info("manuscript imported",
				"title", book.Title, "chapters", len(book.Chapters))

			outPath, _ := cmd.Flags().GetString("out")
			return writeJSON(outPath, book)
		},
	}
	cmd.Flags().String("out", "", "write the book JSON to this file instead of stdout")
	return cmd
}
