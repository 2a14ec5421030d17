package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/models"
)

const (
	MostVisitedLimit  = 5
	RecentVisitsLimit = 10

	maxSessionIDLength = 100
	visitsSheet        = "Visits"
	exportBatchSize    = 500
)

type DashboardStats struct {
	TotalArtifacts    int64
	TotalCollections  int64
	FeaturedArtifacts int64
	TotalVisits       int64
}

// VisitCount is an on-display artifact with the number of recorded visits.
type VisitCount struct {
	ID              uuid.UUID
	InventoryNumber string
	Name            i18n.Text `gorm:"embedded;embeddedPrefix:name_"`
	VisitCount      int64
}

type Dashboard struct {
	Stats        DashboardStats
	MostVisited  []VisitCount
	RecentVisits []models.VisitModel
}

type VisitService struct {
	db *gorm.DB
}

// NewVisitService creates a new instance of VisitService
func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{db: db}
}

// Record appends a visit event. Unsupported languages are stored as French;
// the duration is stored as given.
func (s *VisitService) Record(ctx context.Context, sessionID string, artifactID uuid.UUID, language string, durationSeconds int) (*models.VisitModel, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if len(sessionID) > maxSessionIDLength {
		return nil, fmt.Errorf("%w: session_id is longer than %d characters", ErrInvalidInput, maxSessionIDLength)
	}

	visit := &models.VisitModel{
		SessionID:       sessionID,
		ArtifactID:      artifactID,
		Language:        i18n.ParseOrDefault(language),
		DurationSeconds: durationSeconds,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(visit).Error; err != nil {
		return nil, err
	}
	return visit, nil
}

// Dashboard aggregates the museum statistics shown to visitors and staff.
func (s *VisitService) Dashboard(ctx context.Context) (*Dashboard, error) {
	db := s.db.WithContext(ctx)
	var stats DashboardStats

	if err := db.Model(&models.ArtifactModel{}).Where("is_on_display = ?", true).Count(&stats.TotalArtifacts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.CollectionModel{}).Count(&stats.TotalCollections).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ArtifactModel{}).Where("is_on_display = ? AND is_featured = ?", true, true).Count(&stats.FeaturedArtifacts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.VisitModel{}).Count(&stats.TotalVisits).Error; err != nil {
		return nil, err
	}

	var mostVisited []VisitCount
	err := db.Table("artifact_models AS a").
		Select(`a.id,
			a.inventory_number,
			a.name_fr,
			a.name_en,
			a.name_wo,
			COUNT(v.id) AS visit_count`).
		Joins("LEFT JOIN visit_models v ON v.artifact_id = a.id").
		Where("a.is_on_display = ?", true).
		Group("a.id, a.inventory_number, a.name_fr, a.name_en, a.name_wo").
		Order("visit_count DESC, a.inventory_number ASC").
		Limit(MostVisitedLimit).
		Scan(&mostVisited).Error
	if err != nil {
		return nil, err
	}

	var recent []models.VisitModel
	err = db.Preload("Artifact").
		Order("visited_at DESC, id DESC").
		Limit(RecentVisitsLimit).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	return &Dashboard{Stats: stats, MostVisited: mostVisited, RecentVisits: recent}, nil
}

// ExportVisits writes the whole visit ledger as an XLSX workbook in recording order.
func (s *VisitService) ExportVisits(ctx context.Context, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", visitsSheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(visitsSheet)
	if err != nil {
		return err
	}

	header := []interface{}{"ID", "Session", "Artifact ID", "Inventory number", "Artifact", "Language", "Duration (s)", "Visited at"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	row := 2
	var batch []models.VisitModel
	result := s.db.WithContext(ctx).
		Preload("Artifact").
		FindInBatches(&batch, exportBatchSize, func(tx *gorm.DB, _ int) error {
			for _, visit := range batch {
				cell, err := excelize.CoordinatesToCellName(1, row)
				if err != nil {
					return err
				}
				values := []interface{}{
					visit.ID,
					visit.SessionID,
					visit.ArtifactID.String(),
					visit.Artifact.InventoryNumber,
					visit.Artifact.Name.In(i18n.Default),
					string(visit.Language),
					visit.DurationSeconds,
					visit.VisitedAt.UTC().Format(time.RFC3339),
				}
				if err := sw.SetRow(cell, values); err != nil {
					return err
				}
				row++
			}
			return nil
		})
	if result.Error != nil {
		return result.Error
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
