package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/dtos"
	"github.com/museum-catalog/museum-backend/src/services"
)

type CollectionController struct {
	service  *services.CollectionService
	mediaURL string
	log      *zap.Logger
}

func NewCollectionController(service *services.CollectionService, mediaURL string, log *zap.Logger) *CollectionController {
	return &CollectionController{service: service, mediaURL: mediaURL, log: log}
}

// GetCollections handles GET requests to retrieve all collections, optionally filtered by name
func (c *CollectionController) GetCollections(ctx *gin.Context) {
	collections, err := c.service.GetAllCollections(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, c.mediaURL).Collections(collections))
}

// GetCollectionByID handles GET requests to retrieve a single collection
func (c *CollectionController) GetCollectionByID(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	collection, err := c.service.GetCollectionByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, c.mediaURL).Collection(&collection.CollectionModel, collection.ArtifactCount))
}

// CreateCollection handles POST requests to create a new collection record
func (c *CollectionController) CreateCollection(ctx *gin.Context) {
	var req dtos.CollectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	createdCollection, err := c.service.CreateCollection(ctx.Request.Context(), req.ToModel())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, createdCollection)
}

// UpdateCollection handles PUT requests to update an existing collection record
func (c *CollectionController) UpdateCollection(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req dtos.CollectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updatedCollection, err := c.service.UpdateCollection(ctx.Request.Context(), id, req.ToModel())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, updatedCollection)
}

// DeleteCollection handles DELETE requests to remove an empty collection
func (c *CollectionController) DeleteCollection(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.DeleteCollection(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// UploadImage handles POST requests (multipart "image") setting the collection cover
func (c *CollectionController) UploadImage(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	upload, src, err := openUpload(ctx, "image")
	if err != nil || upload == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer src.Close()

	collection, err := c.service.SaveCollectionImage(ctx.Request.Context(), id, upload)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, collection)
}
