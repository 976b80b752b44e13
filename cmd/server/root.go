package main

import (
	"context"
	"fmt"

	"github.com/dfryer1193/gallery/gallery/application"
	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/dfryer1193/gallery/gallery/persistence"
	"github.com/dfryer1193/gallery/shared/config"
	"github.com/dfryer1193/gallery/shared/db/sqlite"
	"github.com/dfryer1193/gallery/shared/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "gallery",
	Short:         "Photo gallery admin backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}

		if err := logging.Setup(loaded.LogLevel, loaded.LogFormat); err != nil {
			return err
		}

		cfg = loaded
		return nil
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("Command failed")
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}

// app holds the services every command is built from
type app struct {
	gallery  *application.GalleryService
	migrator *application.MigrationService
	close    func() error
}

func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	blobs, err := persistence.NewFileBlobStore(cfg.UploadsDir, cfg.UploadsURL)
	if err != nil {
		return nil, err
	}

	records, closeFn, err := openRecordStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		gallery:  application.NewGalleryService(records, blobs, application.WithLocation(cfg.Location)),
		migrator: application.NewMigrationService(records, blobs),
		close:    closeFn,
	}, nil
}

func openRecordStore(ctx context.Context, cfg *config.Config) (domain.RecordStore, func() error, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		sqliteDB := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: cfg.SQLitePath})
		if err := sqliteDB.Connect(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return persistence.NewSQLiteRecordStore(sqliteDB.DB()), sqliteDB.Close, nil
	default:
		return persistence.NewJSONRecordStore(cfg.DataFile), func() error { return nil }, nil
	}
}

func (a *app) Close() {
	if err := a.close(); err != nil {
		log.Error().Err(err).Msg("Failed to close record store")
	}
}
