package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/services"
)

type ImportController struct {
	service *services.ImportService
	log     *zap.Logger
}

func NewImportController(service *services.ImportService, log *zap.Logger) *ImportController {
	return &ImportController{service: service, log: log}
}

// ImportCatalog handles POST /admin/artifacts/import with a multipart "file" workbook
func (c *ImportController) ImportCatalog(ctx *gin.Context) {
	upload, src, err := openUpload(ctx, "file")
	if err != nil || upload == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer src.Close()

	result, err := c.service.ImportCatalog(ctx.Request.Context(), upload.Body)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
