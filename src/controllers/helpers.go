package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/dtos"
	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/identity"
	"github.com/museum-catalog/museum-backend/src/qr"
	"github.com/museum-catalog/museum-backend/src/services"
	"github.com/museum-catalog/museum-backend/src/storage"
)

// respondError writes the JSON error matching err. Unexpected errors are
// logged and reported without details.
func respondError(ctx *gin.Context, log *zap.Logger, err error) {
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, identity.ErrMalformedIdentifier):
		status, message = http.StatusBadRequest, "Invalid identifier"
	case errors.Is(err, services.ErrArtifactNotFound):
		status, message = http.StatusNotFound, "Artifact not found"
	case errors.Is(err, services.ErrCollectionNotFound),
		errors.Is(err, services.ErrPeriodNotFound),
		errors.Is(err, services.ErrCultureNotFound):
		status = http.StatusNotFound
	case errors.Is(err, gorm.ErrRecordNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrDuplicateInventoryNumber),
		errors.Is(err, services.ErrCollectionInUse),
		errors.Is(err, services.ErrDuplicateAudioGuide),
		errors.Is(err, services.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, services.ErrSessionRequired),
		errors.Is(err, services.ErrPayloadRequired),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, qr.ErrInvalidPayload):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, storage.ErrDriveNotConfigured):
		status = http.StatusServiceUnavailable
	default:
		log.Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(err))
		status, message = http.StatusInternalServerError, "Internal server error"
	}

	ctx.JSON(status, gin.H{"error": message})
}

// requestLanguage reads the lang query parameter, then Accept-Language.
func requestLanguage(ctx *gin.Context) i18n.Language {
	if lang := ctx.Query("lang"); lang != "" {
		return i18n.ParseOrDefault(lang)
	}
	header := ctx.GetHeader("Accept-Language")
	if i := strings.IndexAny(header, ",;"); i >= 0 {
		header = header[:i]
	}
	return i18n.ParseOrDefault(header)
}

func renderer(ctx *gin.Context, mediaURL string) *dtos.Renderer {
	return dtos.NewRenderer(requestLanguage(ctx), mediaURL)
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

func parseArtifactParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := identity.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid identifier"})
		return uuid.Nil, false
	}
	return id, true
}

func optionalUint(ctx *gin.Context, name string) (*uint, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	id := uint(v)
	return &id, nil
}

func optionalBool(ctx *gin.Context, name string) (*bool, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	return &v, nil
}

func optionalArtifact(ctx *gin.Context) (*uuid.UUID, error) {
	raw := ctx.Query("artifact")
	if raw == "" {
		return nil, nil
	}
	id, err := identity.Parse(raw)
	if err != nil {
		return nil, errors.New("invalid artifact parameter")
	}
	return &id, nil
}

func pageFromQuery(ctx *gin.Context) (services.Page, error) {
	var page services.Page
	if raw := ctx.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, errors.New("invalid page parameter")
		}
		page.Number = n
	}
	if raw := ctx.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, errors.New("invalid page_size parameter")
		}
		page.Size = n
	}
	return page, nil
}

func filtersFromQuery(ctx *gin.Context) (services.ArtifactFilters, error) {
	var f services.ArtifactFilters
	var err error
	if f.CollectionID, err = optionalUint(ctx, "collection"); err != nil {
		return f, err
	}
	if f.PeriodID, err = optionalUint(ctx, "period"); err != nil {
		return f, err
	}
	if f.CultureID, err = optionalUint(ctx, "culture"); err != nil {
		return f, err
	}
	if f.IsFeatured, err = optionalBool(ctx, "is_featured"); err != nil {
		return f, err
	}
	return f, nil
}

func pageDTO(page *services.ArtifactPage, results interface{}) dtos.PageDTO {
	return dtos.PageDTO{
		Count:    page.Total,
		Page:     page.Page.Number,
		PageSize: page.Page.Size,
		Results:  results,
	}
}
