package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/controllers"
)

func SetupScanRoutes(router *gin.Engine, svc *Services, mediaURL string, log *zap.Logger) {
	controller := controllers.NewScanController(svc.Scans, svc.Collections, mediaURL, log)

	router.GET("/qr-scan/", controller.Scan)
	router.POST("/qr-scan/", controller.Scan)
}
