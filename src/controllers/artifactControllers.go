package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/dtos"
	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/qr"
	"github.com/museum-catalog/museum-backend/src/services"
	"github.com/museum-catalog/museum-backend/src/storage"
)

const httpTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

type ArtifactController struct {
	artifacts   *services.ArtifactService
	collections *services.CollectionService
	visits      *services.VisitService
	codec       *qr.Codec
	files       *storage.LocalStorage
	mediaURL    string
	log         *zap.Logger
}

func NewArtifactController(
	artifacts *services.ArtifactService,
	collections *services.CollectionService,
	visits *services.VisitService,
	codec *qr.Codec,
	files *storage.LocalStorage,
	mediaURL string,
	log *zap.Logger,
) *ArtifactController {
	return &ArtifactController{
		artifacts:   artifacts,
		collections: collections,
		visits:      visits,
		codec:       codec,
		files:       files,
		mediaURL:    mediaURL,
		log:         log,
	}
}

// detail renders the public view of a resolved artifact.
func (c *ArtifactController) detail(ctx *gin.Context, artifact *models.ArtifactModel) (dtos.ArtifactDetailDTO, error) {
	count, err := c.collections.CountDisplayed(ctx.Request.Context(), artifact.CollectionID)
	if err != nil {
		return dtos.ArtifactDetailDTO{}, err
	}
	return renderer(ctx, c.mediaURL).ArtifactDetail(artifact, count), nil
}

// ListArtifacts handles GET /artifacts/
func (c *ArtifactController) ListArtifacts(ctx *gin.Context) {
	filters, err := filtersFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	page, err := pageFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r := renderer(ctx, c.mediaURL)
	result, err := c.artifacts.ListDisplayed(ctx.Request.Context(), filters, ctx.Query("ordering"), r.Lang(), page)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, pageDTO(result, r.ArtifactList(result.Items)))
}

// SearchArtifacts handles GET /artifacts/search/
func (c *ArtifactController) SearchArtifacts(ctx *gin.Context) {
	filters, err := filtersFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	page, err := pageFromQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.artifacts.Search(ctx.Request.Context(), ctx.Query("q"), filters, page)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, pageDTO(result, renderer(ctx, c.mediaURL).ArtifactSearch(result.Items)))
}

// FeaturedArtifacts handles GET /artifacts/featured/
func (c *ArtifactController) FeaturedArtifacts(ctx *gin.Context) {
	featured, err := c.artifacts.ListFeatured(ctx.Request.Context(), services.DefaultFeaturedLimit)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, c.mediaURL).Featured(featured))
}

// GetArtifact handles GET /artifacts/:id/
func (c *ArtifactController) GetArtifact(ctx *gin.Context) {
	artifact, err := c.artifacts.Resolve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	dto, err := c.detail(ctx, artifact)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto)
}

// TrackVisit handles POST /artifacts/:id/track_visit/
func (c *ArtifactController) TrackVisit(ctx *gin.Context) {
	artifact, err := c.artifacts.Resolve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	var req dtos.TrackVisitRequest
	if err := ctx.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visit, err := c.visits.Record(ctx.Request.Context(), req.SessionID, artifact.ID, req.Language, req.DurationSeconds)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	visit.Artifact = *artifact
	ctx.JSON(http.StatusCreated, renderer(ctx, c.mediaURL).Visit(visit))
}

// CreateArtifact handles POST /admin/artifacts/
func (c *ArtifactController) CreateArtifact(ctx *gin.Context) {
	var req dtos.ArtifactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	artifact, err := req.ToModel()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.artifacts.CreateArtifact(ctx.Request.Context(), artifact); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	created, err := c.artifacts.GetArtifactByID(ctx.Request.Context(), artifact.ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateArtifact handles PUT /admin/artifacts/:id
func (c *ArtifactController) UpdateArtifact(ctx *gin.Context) {
	id, ok := parseArtifactParam(ctx)
	if !ok {
		return
	}
	var req dtos.ArtifactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update, err := req.ToModel()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := c.artifacts.UpdateArtifact(ctx.Request.Context(), id, update)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteArtifact handles DELETE /admin/artifacts/:id
func (c *ArtifactController) DeleteArtifact(ctx *gin.Context) {
	id, ok := parseArtifactParam(ctx)
	if !ok {
		return
	}
	if err := c.artifacts.DeleteArtifact(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetAdminArtifact handles GET /admin/artifacts/:id, whatever the display state.
func (c *ArtifactController) GetAdminArtifact(ctx *gin.Context) {
	id, ok := parseArtifactParam(ctx)
	if !ok {
		return
	}
	artifact, err := c.artifacts.GetArtifactByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, artifact)
}

// GetByInventoryNumber handles GET /admin/artifacts/by-inventory/:number
func (c *ArtifactController) GetByInventoryNumber(ctx *gin.Context) {
	artifact, err := c.artifacts.GetByInventoryNumber(ctx.Request.Context(), ctx.Param("number"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, artifact)
}

// EnsureQRCode handles POST /admin/artifacts/:id/qr-code
func (c *ArtifactController) EnsureQRCode(ctx *gin.Context) {
	id, ok := parseArtifactParam(ctx)
	if !ok {
		return
	}
	artifact, err := c.artifacts.EnsureQRCode(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, c.mediaURL).QRCode(artifact, c.codec.Payload(artifact.ID)))
}

// ServeQRCode handles GET /admin/artifacts/:id/qr-code and streams the PNG,
// generating it first when the artifact has none.
func (c *ArtifactController) ServeQRCode(ctx *gin.Context) {
	id, ok := parseArtifactParam(ctx)
	if !ok {
		return
	}
	artifact, err := c.artifacts.EnsureQRCode(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	fileInfo, err := c.files.Stat(artifact.QRCode)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "QR code file not found"})
		return
	}

	// The image never changes once generated.
	lastModified := fileInfo.ModTime().UTC().Format(httpTimeFormat)
	etag := fmt.Sprintf(`"%s-%d"`, artifact.ID, fileInfo.ModTime().Unix())

	ctx.Header("Cache-Control", "private, max-age=31536000")
	ctx.Header("ETag", etag)
	ctx.Header("Last-Modified", lastModified)

	if match := ctx.GetHeader("If-None-Match"); match == etag {
		ctx.Status(http.StatusNotModified)
		return
	}
	if modSince := ctx.GetHeader("If-Modified-Since"); modSince != "" {
		if t, err := time.Parse(httpTimeFormat, modSince); err == nil {
			if !fileInfo.ModTime().Truncate(time.Second).After(t) {
				ctx.Status(http.StatusNotModified)
				return
			}
		}
	}

	ctx.Header("Content-Type", "image/png")
	if ctx.Query("download") != "" {
		ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="qr_%s.png"`, storage.SanitizeName(artifact.InventoryNumber)))
	}
	ctx.File(c.files.Path(artifact.QRCode))
}

// UploadMainImage handles POST /admin/artifacts/:id/main-image. The image is
// either a multipart "image" file or a JSON {"drive_url": ...} link.
func (c *ArtifactController) UploadMainImage(ctx *gin.Context) {
	id, ok := parseArtifactParam(ctx)
	if !ok {
		return
	}

	var (
		artifact *models.ArtifactModel
		err      error
	)
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		file, header, ferr := ctx.Request.FormFile("image")
		if ferr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		defer file.Close()

		if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
			return
		}
		artifact, err = c.artifacts.SaveMainImage(ctx.Request.Context(), id, header.Filename, file)
	} else {
		var req dtos.MainImageRequest
		if berr := ctx.ShouldBindJSON(&req); berr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": berr.Error()})
			return
		}
		if !storage.IsDriveURL(req.DriveURL) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "drive_url must be a Google Drive link"})
			return
		}
		artifact, err = c.artifacts.SaveMainImageFromURL(ctx.Request.Context(), id, req.DriveURL)
	}
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":         artifact.ID,
		"main_image": renderer(ctx, c.mediaURL).MediaURL(artifact.MainImage),
	})
}
