package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/identity"
	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/storage"
)

const (
	DefaultFeaturedLimit = 10

	featuredCachePrefix = "featured_"
	featuredCacheTTL    = 5 * time.Minute
)

// QREncoder renders the QR image of an artifact identifier.
type QREncoder interface {
	Encode(id uuid.UUID) ([]byte, error)
}

// RemoteFetcher downloads curator-provided links (Google Drive in production).
type RemoteFetcher interface {
	Fetch(ctx context.Context, url string) (*storage.DriveFile, error)
}

// ArtifactFilters are AND-ed equality filters on the public artifact lists.
type ArtifactFilters struct {
	CollectionID *uint
	PeriodID     *uint
	CultureID    *uint
	IsFeatured   *bool
}

type ArtifactPage struct {
	Items []models.ArtifactModel
	Total int64
	Page  Page
}

type ArtifactService struct {
	db      *gorm.DB
	codec   QREncoder
	files   *storage.LocalStorage
	fetcher RemoteFetcher
	cache   *Cache
	log     *zap.Logger
}

func NewArtifactService(db *gorm.DB, codec QREncoder, files *storage.LocalStorage, fetcher RemoteFetcher, cache *Cache, log *zap.Logger) *ArtifactService {
	return &ArtifactService{
		db:      db,
		codec:   codec,
		files:   files,
		fetcher: fetcher,
		cache:   cache,
		log:     log,
	}
}

var searchColumns = []string{
	"name_fr", "name_en", "name_wo",
	"description_fr", "description_en", "description_wo",
	"inventory_number",
}

var editableColumns = append([]string{
	"inventory_number", "dimensions", "weight",
	"collection_id", "period_id", "culture_id",
	"acquisition_date", "is_featured", "is_on_display", "display_location",
},
	localizedColumns("name_", "description_", "historical_context_", "technique_", "material_", "acquisition_method_")...,
)

func localizedColumns(prefixes ...string) []string {
	var cols []string
	for _, prefix := range prefixes {
		for _, lang := range i18n.Supported {
			cols = append(cols, i18n.Column(prefix, lang))
		}
	}
	return cols
}

func displayed(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_on_display = ?", true)
}

func withSummary(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Collection").Preload("Period").Preload("Culture")
}

func withDetail(tx *gorm.DB) *gorm.DB {
	return withSummary(tx).
		Preload("AdditionalImages", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("AudioGuides", func(db *gorm.DB) *gorm.DB {
			return db.Order("language ASC")
		}).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("display_order ASC, id ASC")
		})
}

func (f ArtifactFilters) scope(tx *gorm.DB) *gorm.DB {
	if f.CollectionID != nil {
		tx = tx.Where("collection_id = ?", *f.CollectionID)
	}
	if f.PeriodID != nil {
		tx = tx.Where("period_id = ?", *f.PeriodID)
	}
	if f.CultureID != nil {
		tx = tx.Where("culture_id = ?", *f.CultureID)
	}
	if f.IsFeatured != nil {
		tx = tx.Where("is_featured = ?", *f.IsFeatured)
	}
	return tx
}

// likeOperator returns the case-insensitive LIKE of the connected database.
// SQLite's LIKE already ignores case, for ASCII letters only.
func likeOperator(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}

func textMatch(op, query string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + escapeLike(query) + "%"
	clauses := make([]string, len(searchColumns))
	args := make([]interface{}, len(searchColumns))
	for i, col := range searchColumns {
		clauses[i] = col + " " + op + ` ? ESCAPE '\'`
		args[i] = pattern
	}
	where := "(" + strings.Join(clauses, " OR ") + ")"
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(where, args...)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// orderClause maps a public ordering parameter onto SQL. Name orderings use
// the column of the requested language.
func orderClause(ordering string, lang i18n.Language) (string, error) {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	var column string
	switch field {
	case "":
		column, desc = "created_at", true
	case "created_at":
		column = "created_at"
	case "name":
		column = i18n.Column("name_", lang)
	case "name_fr", "name_en", "name_wo":
		column = field
	default:
		return "", fmt.Errorf("%w: unknown ordering %q", ErrInvalidInput, ordering)
	}

	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return column + " " + dir + ", inventory_number ASC", nil
}

func (s *ArtifactService) page(ctx context.Context, scopes []func(*gorm.DB) *gorm.DB, order string, page Page) (*ArtifactPage, error) {
	page = page.normalize()

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.ArtifactModel{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]models.ArtifactModel, 0, page.Size)
	err := withSummary(s.db.WithContext(ctx)).
		Scopes(scopes...).
		Order(order).
		Offset(page.offset()).
		Limit(page.Size).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &ArtifactPage{Items: items, Total: total, Page: page}, nil
}

// ListDisplayed returns one page of on-display artifacts.
func (s *ArtifactService) ListDisplayed(ctx context.Context, filters ArtifactFilters, ordering string, lang i18n.Language, page Page) (*ArtifactPage, error) {
	order, err := orderClause(ordering, lang)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, []func(*gorm.DB) *gorm.DB{displayed, filters.scope}, order, page)
}

// Search matches query as a case-insensitive substring of the name and
// description in every language or of the inventory number, then applies filters.
func (s *ArtifactService) Search(ctx context.Context, query string, filters ArtifactFilters, page Page) (*ArtifactPage, error) {
	scopes := []func(*gorm.DB) *gorm.DB{displayed, filters.scope}
	if query = strings.TrimSpace(query); query != "" {
		scopes = append(scopes, textMatch(likeOperator(s.db), query))
	}
	return s.page(ctx, scopes, "created_at DESC, inventory_number ASC", page)
}

// ListFeatured returns the newest featured artifacts on display.
func (s *ArtifactService) ListFeatured(ctx context.Context, limit int) ([]models.ArtifactModel, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	cacheKey := fmt.Sprintf("%s%d", featuredCachePrefix, limit)
	if cached, found := s.cache.get(cacheKey); found {
		return cached.([]models.ArtifactModel), nil
	}

	var artifacts []models.ArtifactModel
	err := withSummary(s.db.WithContext(ctx)).
		Scopes(displayed).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&artifacts).Error
	if err != nil {
		return nil, err
	}

	s.cache.set(cacheKey, artifacts, featuredCacheTTL)
	return artifacts, nil
}

// Resolve maps a candidate identifier to a displayable artifact. Unknown and
// withdrawn artifacts both yield ErrArtifactNotFound.
func (s *ArtifactService) Resolve(ctx context.Context, candidate string) (*models.ArtifactModel, error) {
	id, err := identity.Parse(candidate)
	if err != nil {
		return nil, err
	}

	var artifact models.ArtifactModel
	err = withDetail(s.db.WithContext(ctx)).
		Scopes(displayed).
		Where("id = ?", id).
		First(&artifact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// GetArtifactByID loads an artifact regardless of its display state.
func (s *ArtifactService) GetArtifactByID(ctx context.Context, id uuid.UUID) (*models.ArtifactModel, error) {
	var artifact models.ArtifactModel
	err := withDetail(s.db.WithContext(ctx)).First(&artifact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// GetByInventoryNumber loads an artifact by its curator-facing number.
func (s *ArtifactService) GetByInventoryNumber(ctx context.Context, number string) (*models.ArtifactModel, error) {
	var artifact models.ArtifactModel
	err := withDetail(s.db.WithContext(ctx)).First(&artifact, "inventory_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

func validateArtifact(artifact *models.ArtifactModel) error {
	if strings.TrimSpace(artifact.InventoryNumber) == "" {
		return fmt.Errorf("%w: inventory_number is required", ErrInvalidInput)
	}
	if len(artifact.InventoryNumber) > 50 {
		return fmt.Errorf("%w: inventory_number is longer than 50 characters", ErrInvalidInput)
	}
	if strings.TrimSpace(artifact.Name.Fr) == "" {
		return fmt.Errorf("%w: name.fr is required", ErrInvalidInput)
	}
	if artifact.CollectionID == 0 {
		return fmt.Errorf("%w: collection is required", ErrInvalidInput)
	}
	return nil
}

func recordExists(tx *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	err := tx.Model(model).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *ArtifactService) checkReferences(tx *gorm.DB, artifact *models.ArtifactModel) error {
	ok, err := recordExists(tx, &models.CollectionModel{}, artifact.CollectionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCollectionNotFound
	}
	if artifact.PeriodID != nil {
		if ok, err = recordExists(tx, &models.PeriodModel{}, *artifact.PeriodID); err != nil {
			return err
		} else if !ok {
			return ErrPeriodNotFound
		}
	}
	if artifact.CultureID != nil {
		if ok, err = recordExists(tx, &models.CultureModel{}, *artifact.CultureID); err != nil {
			return err
		} else if !ok {
			return ErrCultureNotFound
		}
	}
	return nil
}

func (s *ArtifactService) checkInventoryNumber(tx *gorm.DB, number string, self uuid.UUID) error {
	var count int64
	q := tx.Model(&models.ArtifactModel{}).Where("inventory_number = ?", number)
	if self != uuid.Nil {
		q = q.Where("id <> ?", self)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateInventoryNumber
	}
	return nil
}

// writeQRCode renders and stores the QR image of artifact, returning its media path.
func (s *ArtifactService) writeQRCode(artifact *models.ArtifactModel) (string, error) {
	png, err := s.codec.Encode(artifact.ID)
	if err != nil {
		return "", err
	}
	name := "qr_" + artifact.InventoryNumber + ".png"
	return s.files.Save(storage.QRCodesDir, name, bytes.NewReader(png))
}

// CreateArtifact mints the identifier, renders the QR image and inserts the
// record in one transaction. Any failure leaves neither a row nor a QR file.
func (s *ArtifactService) CreateArtifact(ctx context.Context, artifact *models.ArtifactModel) error {
	if err := validateArtifact(artifact); err != nil {
		return err
	}

	var written string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkInventoryNumber(tx, artifact.InventoryNumber, uuid.Nil); err != nil {
			return err
		}
		if err := s.checkReferences(tx, artifact); err != nil {
			return err
		}

		if artifact.ID == uuid.Nil {
			artifact.ID = identity.Mint()
		}
		if artifact.QRCode == "" {
			rel, err := s.writeQRCode(artifact)
			if err != nil {
				return fmt.Errorf("generate QR code: %w", err)
			}
			written = rel
			artifact.QRCode = rel
		}

		return tx.Omit(clause.Associations).Create(artifact).Error
	})
	if err != nil {
		if written != "" {
			if rmErr := s.files.Remove(written); rmErr != nil {
				s.log.Warn("could not remove orphaned QR code", zap.String("path", written), zap.Error(rmErr))
			}
			artifact.QRCode = ""
		}
		return err
	}

	s.log.Info("artifact created",
		zap.String("id", artifact.ID.String()),
		zap.String("inventory_number", artifact.InventoryNumber))
	s.invalidateCache()
	return nil
}

// UpdateArtifact replaces the editable fields of an artifact. The identifier,
// the QR image and the main image are left untouched.
func (s *ArtifactService) UpdateArtifact(ctx context.Context, id uuid.UUID, update *models.ArtifactModel) (*models.ArtifactModel, error) {
	if err := validateArtifact(update); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ArtifactModel
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrArtifactNotFound
			}
			return err
		}
		if err := s.checkInventoryNumber(tx, update.InventoryNumber, id); err != nil {
			return err
		}
		if err := s.checkReferences(tx, update); err != nil {
			return err
		}

		update.ID = id
		return tx.Model(&existing).Select(editableColumns).Updates(update).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return s.GetArtifactByID(ctx, id)
}

// EnsureQRCode generates the QR image of an artifact that has none. An
// existing image is never regenerated.
func (s *ArtifactService) EnsureQRCode(ctx context.Context, id uuid.UUID) (*models.ArtifactModel, error) {
	var artifact models.ArtifactModel
	if err := s.db.WithContext(ctx).First(&artifact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtifactNotFound
		}
		return nil, err
	}
	if artifact.QRCode != "" {
		return &artifact, nil
	}

	rel, err := s.writeQRCode(&artifact)
	if err != nil {
		return nil, fmt.Errorf("generate QR code: %w", err)
	}

	result := s.db.WithContext(ctx).
		Model(&models.ArtifactModel{}).
		Where("id = ? AND (qr_code = '' OR qr_code IS NULL)", id).
		Update("qr_code", rel)
	if result.Error != nil || result.RowsAffected == 0 {
		_ = s.files.Remove(rel)
		if result.Error != nil {
			return nil, result.Error
		}
		// Another request stored its image first.
		if err := s.db.WithContext(ctx).First(&artifact, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &artifact, nil
	}

	artifact.QRCode = rel
	s.log.Info("qr code generated", zap.String("id", id.String()), zap.String("path", rel))
	return &artifact, nil
}

// SaveMainImage stores a new main image and removes the previous file.
func (s *ArtifactService) SaveMainImage(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*models.ArtifactModel, error) {
	var artifact models.ArtifactModel
	if err := s.db.WithContext(ctx).First(&artifact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtifactNotFound
		}
		return nil, err
	}

	previous := artifact.MainImage
	rel, err := s.files.Save(storage.ArtifactsDir, filename, r)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&artifact).Update("main_image", rel).Error; err != nil {
		_ = s.files.Remove(rel)
		return nil, err
	}

	artifact.MainImage = rel
	if previous != "" && previous != rel {
		if err := s.files.Remove(previous); err != nil {
			s.log.Warn("could not remove previous main image", zap.String("path", previous), zap.Error(err))
		}
	}

	s.invalidateCache()
	return &artifact, nil
}

// SaveMainImageFromURL downloads the main image from a shared Drive link.
func (s *ArtifactService) SaveMainImageFromURL(ctx context.Context, id uuid.UUID, url string) (*models.ArtifactModel, error) {
	if s.fetcher == nil {
		return nil, storage.ErrDriveNotConfigured
	}
	file, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer file.Body.Close()

	if !strings.HasPrefix(file.MimeType, "image/") {
		return nil, fmt.Errorf("%w: linked file is %s, not an image", ErrInvalidInput, file.MimeType)
	}
	return s.SaveMainImage(ctx, id, file.Name, file.Body)
}

// DeleteArtifact removes an artifact with its owned media and visit events.
func (s *ArtifactService) DeleteArtifact(ctx context.Context, id uuid.UUID) error {
	var artifact models.ArtifactModel
	err := s.db.WithContext(ctx).
		Preload("AdditionalImages").
		Preload("AudioGuides").
		Preload("Videos").
		First(&artifact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrArtifactNotFound
	}
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{
			&models.VisitModel{},
			&models.ArtifactImageModel{},
			&models.AudioGuideModel{},
			&models.VideoModel{},
		} {
			if err := tx.Where("artifact_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.ArtifactModel{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	for _, path := range artifactFiles(&artifact) {
		if err := s.files.Remove(path); err != nil {
			s.log.Warn("could not remove artifact file", zap.String("path", path), zap.Error(err))
		}
	}

	s.log.Info("artifact deleted", zap.String("id", id.String()))
	s.invalidateCache()
	return nil
}

func artifactFiles(a *models.ArtifactModel) []string {
	paths := []string{a.QRCode, a.MainImage}
	for _, img := range a.AdditionalImages {
		paths = append(paths, img.Image)
	}
	for _, guide := range a.AudioGuides {
		paths = append(paths, guide.AudioFile)
	}
	for _, video := range a.Videos {
		if video.VideoFile != nil {
			paths = append(paths, *video.VideoFile)
		}
		if video.Thumbnail != nil {
			paths = append(paths, *video.Thumbnail)
		}
	}
	return paths
}

func (s *ArtifactService) invalidateCache() {
	s.cache.invalidate(featuredCachePrefix)
	s.cache.invalidate(collectionsCacheKey)
}
