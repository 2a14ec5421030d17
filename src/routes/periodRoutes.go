package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/controllers"
	"github.com/museum-catalog/museum-backend/src/services"
)

func SetupPeriodRoutes(router *gin.Engine, admin *gin.RouterGroup, service *services.PeriodService, log *zap.Logger) {
	periodController := controllers.NewPeriodController(service, log)

	// Public routes
	period := router.Group("/periods")
	{
		period.GET("/", periodController.GetPeriods)
		period.GET("/:id/", periodController.GetPeriodByID)
	}

	// Protected routes
	adminPeriod := admin.Group("/periods")
	{
		adminPeriod.POST("/", periodController.CreatePeriod)
		adminPeriod.PUT("/:id", periodController.UpdatePeriod)
		adminPeriod.DELETE("/:id", periodController.DeletePeriod)
	}
}
