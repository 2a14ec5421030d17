package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/controllers"
	"github.com/museum-catalog/museum-backend/src/services"
)

func SetupStatsRoutes(router *gin.Engine, admin *gin.RouterGroup, service *services.VisitService, mediaURL string, log *zap.Logger) {
	controller := controllers.NewStatsController(service, mediaURL, log)

	router.GET("/stats/dashboard/", controller.Dashboard)
	admin.GET("/visits/export", controller.ExportVisits)
}
