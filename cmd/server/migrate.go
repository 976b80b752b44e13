package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dfryer1193/gallery/api"
	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <file>",
	Short: "Import gallery records exported from a browser",
	Long:  `Import records from a JSON file holding either an array of records or a {"galleryData": [...]} export. Images still embedded as data URLs are written to the uploads directory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read migration file: %w", err)
		}

		candidates, err := parseMigrationFile(data)
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.migrator.Migrate(cmd.Context(), candidates)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d of %d images (%d skipped), gallery now holds %d\n",
			result.Migrated, len(candidates), result.Skipped, result.Total)
		return nil
	},
}

// parseMigrationFile accepts a bare record array or the {"galleryData": [...]} request shape
func parseMigrationFile(data []byte) ([]domain.ImageRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("migration file is empty")
	}

	if trimmed[0] == '[' {
		var records []domain.ImageRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("failed to parse migration file: %w", err)
		}
		return records, nil
	}

	var req api.MigrateRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, fmt.Errorf("failed to parse migration file: %w", err)
	}
	if req.GalleryData == nil {
		return nil, fmt.Errorf("migration file has no galleryData")
	}

	return *req.GalleryData, nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
