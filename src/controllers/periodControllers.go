package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/dtos"
	"github.com/museum-catalog/museum-backend/src/services"
)

type PeriodController struct {
	service *services.PeriodService
	log     *zap.Logger
}

func NewPeriodController(service *services.PeriodService, log *zap.Logger) *PeriodController {
	return &PeriodController{service: service, log: log}
}

// GetPeriods handles GET requests to retrieve all periods in chronological order
func (c *PeriodController) GetPeriods(ctx *gin.Context) {
	periods, err := c.service.GetAllPeriods(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, "").Periods(periods))
}

// GetPeriodByID handles GET requests to retrieve a single period
func (c *PeriodController) GetPeriodByID(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	period, err := c.service.GetPeriodByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, "").Period(period))
}

// CreatePeriod handles POST requests to create a new period record
func (c *PeriodController) CreatePeriod(ctx *gin.Context) {
	var req dtos.PeriodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	createdPeriod, err := c.service.CreatePeriod(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, createdPeriod)
}

// UpdatePeriod handles PUT requests to update an existing period record
func (c *PeriodController) UpdatePeriod(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req dtos.PeriodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updatedPeriod, err := c.service.UpdatePeriod(ctx.Request.Context(), id, req.ToModel())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, updatedPeriod)
}

// DeletePeriod handles DELETE requests; artifacts of the period keep existing without one
func (c *PeriodController) DeletePeriod(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeletePeriod(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
