package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type StatsController struct {
	service  *services.VisitService
	mediaURL string
	log      *zap.Logger
}

func NewStatsController(service *services.VisitService, mediaURL string, log *zap.Logger) *StatsController {
	return &StatsController{service: service, mediaURL: mediaURL, log: log}
}

// Dashboard handles GET /stats/dashboard/
func (c *StatsController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.service.Dashboard(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, c.mediaURL).Dashboard(dashboard))
}

// ExportVisits handles GET /admin/visits/export and sends the visit ledger
// as an XLSX attachment.
func (c *StatsController) ExportVisits(ctx *gin.Context) {
	// Buffered so that a failure still yields a JSON error.
	var buf bytes.Buffer
	if err := c.service.ExportVisits(ctx.Request.Context(), &buf); err != nil {
		respondError(ctx, c.log, err)
		return
	}

	filename := fmt.Sprintf("visits_%s.xlsx", time.Now().UTC().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
