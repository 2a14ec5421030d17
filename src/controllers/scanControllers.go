package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/dtos"
	"github.com/museum-catalog/museum-backend/src/identity"
	"github.com/museum-catalog/museum-backend/src/qr"
	"github.com/museum-catalog/museum-backend/src/services"
)

type ScanController struct {
	scans       *services.ScanService
	collections *services.CollectionService
	mediaURL    string
	log         *zap.Logger
}

func NewScanController(scans *services.ScanService, collections *services.CollectionService, mediaURL string, log *zap.Logger) *ScanController {
	return &ScanController{scans: scans, collections: collections, mediaURL: mediaURL, log: log}
}

// Scan handles GET and POST /qr-scan/. qr_data is read from the query
// string, a form field or a JSON body, in that order.
func (c *ScanController) Scan(ctx *gin.Context) {
	payload := ctx.Query("qr_data")
	if payload == "" && ctx.Request.Method == http.MethodPost {
		var req dtos.ScanRequest
		if err := ctx.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		payload = req.QRData
	}

	artifact, err := c.scans.Scan(ctx.Request.Context(), payload)
	switch {
	case err == nil:
	case errors.Is(err, identity.ErrMalformedIdentifier), errors.Is(err, qr.ErrInvalidPayload):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid QR code: " + err.Error()})
		return
	default:
		respondError(ctx, c.log, err)
		return
	}

	count, err := c.collections.CountDisplayed(ctx.Request.Context(), artifact.CollectionID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, c.mediaURL).ArtifactDetail(artifact, count))
}
