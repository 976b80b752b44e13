package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List gallery images",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.gallery.ListImages(cmd.Context())
		if err != nil {
			return err
		}

		return printRecords(cmd.OutOrStdout(), records)
	},
}

func printRecords(out io.Writer, records []domain.ImageRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "No images.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDATE\tURL")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Category, r.Date, r.URL)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
