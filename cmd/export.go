package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"gallery/lifecycle"

	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Exports the guestbook or all photos to a file",
	}

	exportWishesCmd = &cobra.Command{
		Use:   "wishes",
		Short: "Writes every wish as CSV or PDF, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withExportManager(cmd.Context(), func(m *lifecycle.Manager, w io.Writer) error {
				switch exportFormat {
				case "csv":
					return m.ExportWishesCSV(cmd.Context(), w)
				case "pdf":
					return m.ExportWishesPDF(cmd.Context(), w)
				}
				return fmt.Errorf("unknown format %q, use csv or pdf", exportFormat)
			})
		},
	}

	exportPhotosCmd = &cobra.Command{
		Use:   "photos",
		Short: "Downloads every photo into a ZIP archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withExportManager(cmd.Context(), func(m *lifecycle.Manager, w io.Writer) error {
				result, err := m.ExportPhotosArchive(cmd.Context(), w)
				if err != nil {
					return err
				}
				log.Printf("Archived %d photos, skipped %d", result.Included, len(result.Skipped))
				for _, id := range result.Skipped {
					log.Printf("Skipped photo %s", id)
				}
				return nil
			})
		},
	}
)

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	exportWishesCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "csv or pdf")
	exportCmd.AddCommand(exportWishesCmd, exportPhotosCmd)
	rootCmd.AddCommand(exportCmd)
}

// withExportManager opens the stores and the output, the output file is removed if fn fails
func withExportManager(ctx context.Context, fn func(m *lifecycle.Manager, w io.Writer) error) error {
	store, err := openRecords(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	if exportOut == "" {
		return fn(newLifecycle(store, nil), os.Stdout)
	}
	file, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	err = fn(newLifecycle(store, nil), file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(exportOut)
	}
	return err
}
