package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/controllers"
	"github.com/museum-catalog/museum-backend/src/services"
)

func SetupCultureRoutes(router *gin.Engine, admin *gin.RouterGroup, service *services.CultureService, log *zap.Logger) {
	cultureController := controllers.NewCultureController(service, log)

	// Public routes
	culture := router.Group("/cultures")
	{
		culture.GET("/", cultureController.GetCultures)
		culture.GET("/:id/", cultureController.GetCultureByID)
	}

	// Protected routes
	adminCulture := admin.Group("/cultures")
	{
		adminCulture.POST("/", cultureController.CreateCulture)
		adminCulture.PUT("/:id", cultureController.UpdateCulture)
		adminCulture.DELETE("/:id", cultureController.DeleteCulture)
	}
}
