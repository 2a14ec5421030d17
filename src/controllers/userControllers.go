package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/services"
)

type UserController struct {
	service *services.UserService
	log     *zap.Logger
}

func NewUserController(service *services.UserService, log *zap.Logger) *UserController {
	return &UserController{service: service, log: log}
}

// AuthenticateUser handles POST /login and returns a bearer token
func (c *UserController) AuthenticateUser(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := c.service.AuthenticateUser(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// GetAllUsers handles GET /admin/users
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.service.GetAllUsers(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// CreateUser handles POST /admin/users
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.service.CreateUser(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, models.RegisterResponse{ID: user.ID, Username: user.Username})
}

// DeleteUser handles DELETE /admin/users/:id
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteUser(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
