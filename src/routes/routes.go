// Package routes wires controllers to the gin router.
package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/middleware"
	"github.com/museum-catalog/museum-backend/src/qr"
	"github.com/museum-catalog/museum-backend/src/services"
	"github.com/museum-catalog/museum-backend/src/storage"
)

// Services groups everything the HTTP layer depends on.
type Services struct {
	Artifacts   *services.ArtifactService
	Collections *services.CollectionService
	Periods     *services.PeriodService
	Cultures    *services.CultureService
	Media       *services.MediaService
	Visits      *services.VisitService
	Scans       *services.ScanService
	Users       *services.UserService
	Imports     *services.ImportService

	Codec *qr.Codec
	Files *storage.LocalStorage
}

// Options holds the HTTP settings taken from the configuration.
type Options struct {
	SecretKey   string
	MediaURL    string
	CORSOrigins []string
}

// NewRouter builds the engine serving the public API, the curator API under
// /admin and the media files.
func NewRouter(svc *Services, opts Options, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.SetupCORS(opts.CORSOrigins),
	)

	// Curator routes
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(opts.SecretKey))

	SetupArtifactRoutes(router, admin, svc, opts.MediaURL, log)
	SetupMediaRoutes(router, admin, svc.Media, opts.MediaURL, log)
	SetupScanRoutes(router, svc, opts.MediaURL, log)
	SetupStatsRoutes(router, admin, svc.Visits, opts.MediaURL, log)
	SetupCollectionRoutes(router, admin, svc.Collections, opts.MediaURL, log)
	SetupPeriodRoutes(router, admin, svc.Periods, log)
	SetupCultureRoutes(router, admin, svc.Cultures, log)
	SetupUserRoutes(router, admin, svc.Users, log)

	router.Static(opts.MediaURL, svc.Files.Root())

	return router
}
