package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/dtos"
	"github.com/museum-catalog/museum-backend/src/services"
)

type CultureController struct {
	service *services.CultureService
	log     *zap.Logger
}

func NewCultureController(service *services.CultureService, log *zap.Logger) *CultureController {
	return &CultureController{service: service, log: log}
}

// GetCultures handles GET requests to retrieve all cultures
func (c *CultureController) GetCultures(ctx *gin.Context) {
	cultures, err := c.service.GetAllCultures(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, "").Cultures(cultures))
}

func (c *CultureController) GetCultureByID(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	culture, err := c.service.GetCultureByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, "").Culture(culture))
}

func (c *CultureController) CreateCulture(ctx *gin.Context) {
	var req dtos.CultureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	createdCulture, err := c.service.CreateCulture(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, createdCulture)
}

func (c *CultureController) UpdateCulture(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req dtos.CultureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updatedCulture, err := c.service.UpdateCulture(ctx.Request.Context(), id, req.ToModel())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, updatedCulture)
}

func (c *CultureController) DeleteCulture(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteCulture(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
