package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dfryer1193/gallery/gallery/application"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <image>",
	Short: "Add an image file to the gallery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleFlag, _ := cmd.Flags().GetString("title")
		categoryFlag, _ := cmd.Flags().GetString("category")

		if _, err := os.Stat(args[0]); err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.gallery.CreateImage(cmd.Context(), application.CreateImageInput{
			Title:    titleFlag,
			Category: categoryFlag,
			Upload:   localFile(args[0]),
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s (%s)\n", rec.ID, rec.Title, rec.URL)
		return nil
	},
}

// localFile is a file on disk handed to the upload path.
// It reports no content type so the blob store sniffs it.
type localFile string

func (f localFile) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f localFile) ContentType() string {
	return ""
}

func init() {
	addCmd.Flags().StringP("title", "t", "", "image title")
	addCmd.Flags().String("category", "", "image category")
	rootCmd.AddCommand(addCmd)
}
