package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/controllers"
	"github.com/museum-catalog/museum-backend/src/services"
)

func SetupCollectionRoutes(router *gin.Engine, admin *gin.RouterGroup, service *services.CollectionService, mediaURL string, log *zap.Logger) {
	collectionController := controllers.NewCollectionController(service, mediaURL, log)

	// Public routes
	collection := router.Group("/collections")
	{
		collection.GET("/", collectionController.GetCollections)
		collection.GET("/:id/", collectionController.GetCollectionByID)
	}

	// Protected routes
	adminCollection := admin.Group("/collections")
	{
		adminCollection.POST("/", collectionController.CreateCollection)
		adminCollection.PUT("/:id", collectionController.UpdateCollection)
		adminCollection.DELETE("/:id", collectionController.DeleteCollection)
		adminCollection.POST("/:id/image", collectionController.UploadImage)
	}
}
