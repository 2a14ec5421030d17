package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/storage"
)

// Sheets read by ImportCatalog. Missing sheets are skipped.
const (
	PeriodsSheet     = "Periods"
	CulturesSheet    = "Cultures"
	CollectionsSheet = "Collections"
	ArtifactsSheet   = "Artifacts"

	defaultCurator = "Inconnu"
)

// ImportResult counts the rows of a catalog import per sheet.
type ImportResult struct {
	Created  map[string]int `json:"created"`
	Existing map[string]int `json:"existing"`
	Errors   []string       `json:"errors"`
}

func newImportResult() *ImportResult {
	return &ImportResult{Created: map[string]int{}, Existing: map[string]int{}, Errors: []string{}}
}

func (r *ImportResult) fail(sheet string, row int, format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s row %d: %s", sheet, row, fmt.Sprintf(format, args...)))
}

// ImportService loads periods, cultures, collections and artifacts from an
// XLSX workbook. Existing records, matched on their French name or on the
// inventory number, are left untouched.
type ImportService struct {
	db        *gorm.DB
	artifacts *ArtifactService
	cache     *Cache
	log       *zap.Logger
}

// NewImportService creates a new instance of ImportService
func NewImportService(db *gorm.DB, artifacts *ArtifactService, cache *Cache, log *zap.Logger) *ImportService {
	return &ImportService{db: db, artifacts: artifacts, cache: cache, log: log}
}

// sheetRow is a data row addressed by the lower-cased header of its sheet.
type sheetRow struct {
	number  int
	columns map[string]int
	cells   []string
}

func (r sheetRow) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r sheetRow) text(prefix string) i18n.Text {
	return i18n.Text{Fr: r.get(prefix + "fr"), En: r.get(prefix + "en"), Wo: r.get(prefix + "wo")}
}

func (r sheetRow) optionalInt(column string) (*int, error) {
	raw := r.get(column)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", column)
	}
	return &v, nil
}

func (r sheetRow) boolOr(column string, fallback bool) (bool, error) {
	raw := r.get(column)
	if raw == "" {
		return fallback, nil
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "oui", "x":
		return true, nil
	case "0", "false", "no", "non":
		return false, nil
	}
	return false, fmt.Errorf("%s must be a boolean", column)
}

func (r sheetRow) optionalString(column string) *string {
	if v := r.get(column); v != "" {
		return &v
	}
	return nil
}

func readSheet(f *excelize.File, name string) ([]sheetRow, error) {
	index, err := f.GetSheetIndex(name)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, nil
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}

	var out []sheetRow
	for i, cells := range rows[1:] {
		blank := true
		for _, cell := range cells {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}
		// Row numbers follow the spreadsheet, header included.
		out = append(out, sheetRow{number: i + 2, columns: columns, cells: cells})
	}
	return out, nil
}

// lookupByName returns the id of the record of model named nameFr, or 0.
func (s *ImportService) lookupByName(ctx context.Context, model interface{}, nameFr string) (uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(model).Where("name_fr = ?", nameFr).Limit(1).Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	return ids[0], nil
}

// ImportCatalog reads the workbook in r. Row level problems are collected in
// the result and do not stop the import; an unreadable workbook does.
func (s *ImportService) ImportCatalog(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid workbook: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	result := newImportResult()
	defer s.cache.invalidate("")

	periods, err := s.importPeriods(ctx, f, result)
	if err != nil {
		return nil, err
	}
	cultures, err := s.importCultures(ctx, f, result)
	if err != nil {
		return nil, err
	}
	collections, err := s.importCollections(ctx, f, result)
	if err != nil {
		return nil, err
	}
	if err := s.importArtifacts(ctx, f, result, collections, periods, cultures); err != nil {
		return nil, err
	}

	s.log.Info("catalog imported",
		zap.Any("created", result.Created),
		zap.Any("existing", result.Existing),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

func (s *ImportService) importPeriods(ctx context.Context, f *excelize.File, result *ImportResult) (map[string]uint, error) {
	rows, err := readSheet(f, PeriodsSheet)
	if err != nil {
		return nil, err
	}

	ids := map[string]uint{}
	for _, row := range rows {
		period := models.PeriodModel{Name: row.text("name_"), Description: row.text("description_")}
		if period.StartYear, err = row.optionalInt("start_year"); err != nil {
			result.fail(PeriodsSheet, row.number, "%v", err)
			continue
		}
		if period.EndYear, err = row.optionalInt("end_year"); err != nil {
			result.fail(PeriodsSheet, row.number, "%v", err)
			continue
		}
		if err := validatePeriod(&period); err != nil {
			result.fail(PeriodsSheet, row.number, "%v", err)
			continue
		}

		id, err := s.lookupByName(ctx, &models.PeriodModel{}, period.Name.Fr)
		if err != nil {
			return nil, err
		}
		if id != 0 {
			result.Existing[PeriodsSheet]++
			ids[period.Name.Fr] = id
			continue
		}
		if err := s.db.WithContext(ctx).Create(&period).Error; err != nil {
			result.fail(PeriodsSheet, row.number, "%v", err)
			continue
		}
		result.Created[PeriodsSheet]++
		ids[period.Name.Fr] = period.ID
	}
	return ids, nil
}

func (s *ImportService) importCultures(ctx context.Context, f *excelize.File, result *ImportResult) (map[string]uint, error) {
	rows, err := readSheet(f, CulturesSheet)
	if err != nil {
		return nil, err
	}

	ids := map[string]uint{}
	for _, row := range rows {
		culture := models.CultureModel{Name: row.text("name_"), Description: row.text("description_")}
		if err := validateCulture(&culture); err != nil {
			result.fail(CulturesSheet, row.number, "%v", err)
			continue
		}

		id, err := s.lookupByName(ctx, &models.CultureModel{}, culture.Name.Fr)
		if err != nil {
			return nil, err
		}
		if id != 0 {
			result.Existing[CulturesSheet]++
			ids[culture.Name.Fr] = id
			continue
		}
		if err := s.db.WithContext(ctx).Create(&culture).Error; err != nil {
			result.fail(CulturesSheet, row.number, "%v", err)
			continue
		}
		result.Created[CulturesSheet]++
		ids[culture.Name.Fr] = culture.ID
	}
	return ids, nil
}

func (s *ImportService) importCollections(ctx context.Context, f *excelize.File, result *ImportResult) (map[string]uint, error) {
	rows, err := readSheet(f, CollectionsSheet)
	if err != nil {
		return nil, err
	}

	ids := map[string]uint{}
	for _, row := range rows {
		collection := models.CollectionModel{
			Name:        row.text("name_"),
			Description: row.text("description_"),
			Curator:     row.text("curator_"),
		}
		if collection.Curator.Fr == "" {
			collection.Curator.Fr = defaultCurator
		}
		if err := validateCollection(&collection); err != nil {
			result.fail(CollectionsSheet, row.number, "%v", err)
			continue
		}

		id, err := s.lookupByName(ctx, &models.CollectionModel{}, collection.Name.Fr)
		if err != nil {
			return nil, err
		}
		if id != 0 {
			result.Existing[CollectionsSheet]++
			ids[collection.Name.Fr] = id
			continue
		}
		if err := s.db.WithContext(ctx).Create(&collection).Error; err != nil {
			result.fail(CollectionsSheet, row.number, "%v", err)
			continue
		}
		result.Created[CollectionsSheet]++
		ids[collection.Name.Fr] = collection.ID
	}
	return ids, nil
}

// resolveReference maps the French name in column to an id, consulting the
// rows imported so far before the database.
func (s *ImportService) resolveReference(ctx context.Context, row sheetRow, column string, known map[string]uint, model interface{}) (*uint, error) {
	name := row.get(column)
	if name == "" {
		return nil, nil
	}
	id, ok := known[name]
	if !ok {
		var err error
		if id, err = s.lookupByName(ctx, model, name); err != nil {
			return nil, err
		}
	}
	if id == 0 {
		return nil, fmt.Errorf("unknown %s %q", column, name)
	}
	return &id, nil
}

func (s *ImportService) importArtifacts(ctx context.Context, f *excelize.File, result *ImportResult, collections, periods, cultures map[string]uint) error {
	rows, err := readSheet(f, ArtifactsSheet)
	if err != nil {
		return err
	}

	for _, row := range rows {
		number := row.get("inventory_number")
		if number == "" {
			result.fail(ArtifactsSheet, row.number, "inventory_number is required")
			continue
		}

		var count int64
		if err := s.db.WithContext(ctx).Model(&models.ArtifactModel{}).Where("inventory_number = ?", number).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			result.Existing[ArtifactsSheet]++
			continue
		}

		artifact, err := s.artifactFromRow(ctx, row, collections, periods, cultures)
		if err != nil {
			result.fail(ArtifactsSheet, row.number, "%v", err)
			continue
		}
		if err := s.artifacts.CreateArtifact(ctx, artifact); err != nil {
			result.fail(ArtifactsSheet, row.number, "%v", err)
			continue
		}
		result.Created[ArtifactsSheet]++

		if url := row.get("main_image_url"); url != "" {
			if !storage.IsDriveURL(url) {
				result.fail(ArtifactsSheet, row.number, "main_image_url is not a Google Drive link")
				continue
			}
			if _, err := s.artifacts.SaveMainImageFromURL(ctx, artifact.ID, url); err != nil {
				result.fail(ArtifactsSheet, row.number, "main image: %v", err)
			}
		}
	}
	return nil
}

func (s *ImportService) artifactFromRow(ctx context.Context, row sheetRow, collections, periods, cultures map[string]uint) (*models.ArtifactModel, error) {
	artifact := &models.ArtifactModel{
		InventoryNumber:   row.get("inventory_number"),
		Name:              row.text("name_"),
		Description:       row.text("description_"),
		HistoricalContext: row.text("historical_context_"),
		Technique:         row.text("technique_"),
		Material:          row.text("material_"),
		AcquisitionMethod: row.text("acquisition_method_"),
		Dimensions:        row.get("dimensions"),
		Weight:            row.optionalString("weight"),
		DisplayLocation:   row.optionalString("display_location"),
	}

	collectionID, err := s.resolveReference(ctx, row, "collection", collections, &models.CollectionModel{})
	if err != nil {
		return nil, err
	}
	if collectionID == nil {
		return nil, errors.New("collection is required")
	}
	artifact.CollectionID = *collectionID

	if artifact.PeriodID, err = s.resolveReference(ctx, row, "period", periods, &models.PeriodModel{}); err != nil {
		return nil, err
	}
	if artifact.CultureID, err = s.resolveReference(ctx, row, "culture", cultures, &models.CultureModel{}); err != nil {
		return nil, err
	}
	if artifact.IsFeatured, err = row.boolOr("is_featured", false); err != nil {
		return nil, err
	}
	if artifact.IsOnDisplay, err = row.boolOr("is_on_display", true); err != nil {
		return nil, err
	}
	return artifact, nil
}
