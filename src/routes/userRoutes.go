package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/controllers"
	"github.com/museum-catalog/museum-backend/src/services"
)

func SetupUserRoutes(router *gin.Engine, admin *gin.RouterGroup, service *services.UserService, log *zap.Logger) {
	userController := controllers.NewUserController(service, log)

	// Public routes
	router.POST("/login", userController.AuthenticateUser)

	// Protected routes
	users := admin.Group("/users")
	{
		users.GET("", userController.GetAllUsers)
		users.POST("", userController.CreateUser)
		users.DELETE("/:id", userController.DeleteUser)
	}
}
