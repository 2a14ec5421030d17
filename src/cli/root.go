// Package cli implements the museum command line: the HTTP server and the
// maintenance commands sharing its configuration.
package cli

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/config"
	"github.com/museum-catalog/museum-backend/src/db"
	"github.com/museum-catalog/museum-backend/src/logger"
	"github.com/museum-catalog/museum-backend/src/routes"
	"github.com/museum-catalog/museum-backend/src/services"
	"github.com/museum-catalog/museum-backend/src/storage"
)

var configPath string

// appContext holds the resources shared by every command
type appContext struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *gorm.DB
}

// Close releases resources held by appContext
func (a *appContext) Close() {
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.Log.Sync()
}

// initContext loads the configuration, builds the logger, connects to the
// database and migrates the schema.
func initContext() (*appContext, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	conn, err := db.Connect(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := db.Migrate(conn); err != nil {
		return nil, err
	}

	return &appContext{Config: cfg, Log: log, DB: conn}, nil
}

// Services builds the service layer over the open database.
func (a *appContext) Services() (*routes.Services, error) {
	codec, err := a.Config.NewCodec()
	if err != nil {
		return nil, err
	}

	files := storage.NewLocalStorage(a.Config.MediaRoot)
	cache := services.NewCache()

	var fetcher services.RemoteFetcher
	drive := storage.NewDriveFetcher(a.Config.DriveCredentialsPath, a.Config.DriveCredentialsJSON, a.Log)
	if drive.Configured() {
		fetcher = drive
	} else {
		a.Log.Info("Google Drive credentials not configured, drive_url uploads are disabled")
	}

	artifacts := services.NewArtifactService(a.DB, codec, files, fetcher, cache, a.Log)
	return &routes.Services{
		Artifacts:   artifacts,
		Collections: services.NewCollectionService(a.DB, files, cache, a.Log),
		Periods:     services.NewPeriodService(a.DB, cache),
		Cultures:    services.NewCultureService(a.DB, cache),
		Media:       services.NewMediaService(a.DB, files, a.Log),
		Visits:      services.NewVisitService(a.DB),
		Scans:       services.NewScanService(artifacts),
		Users:       services.NewUserService(a.DB, a.Config.JWTSecret),
		Imports:     services.NewImportService(a.DB, artifacts, cache, a.Log),
		Codec:       codec,
		Files:       files,
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "museum",
	Short: "Museum catalog backend",
	Long: `museum serves the public catalog API of the museum (artifact pages,
QR code scans, visit statistics) and the curator API used to manage it.`,
	SilenceUsage: true,
}

func init() {
	gin.SetMode(gin.ReleaseMode)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("MUSEUM_CONFIG"), "path to a TOML configuration file")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
