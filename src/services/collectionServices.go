package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/storage"
)

const (
	collectionsCacheKey = "collections"
	collectionsCacheTTL = 10 * time.Minute
)

// CollectionWithCount pairs a collection with the number of its artifacts on display.
type CollectionWithCount struct {
	models.CollectionModel
	ArtifactCount int64
}

type CollectionService struct {
	db    *gorm.DB
	files *storage.LocalStorage
	cache *Cache
	log   *zap.Logger
}

// NewCollectionService creates a new instance of CollectionService
func NewCollectionService(db *gorm.DB, files *storage.LocalStorage, cache *Cache, log *zap.Logger) *CollectionService {
	return &CollectionService{db: db, files: files, cache: cache, log: log}
}

// displayedCounts returns the number of on-display artifacts per collection id.
func (s *CollectionService) displayedCounts(ctx context.Context, ids ...uint) (map[uint]int64, error) {
	type countRow struct {
		CollectionID uint
		Total        int64
	}

	var rows []countRow
	query := s.db.WithContext(ctx).
		Model(&models.ArtifactModel{}).
		Select("collection_id, COUNT(*) AS total").
		Where("is_on_display = ?", true).
		Group("collection_id")
	if len(ids) > 0 {
		query = query.Where("collection_id IN ?", ids)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CollectionID] = row.Total
	}
	return counts, nil
}

// CountDisplayed returns the number of on-display artifacts in a collection.
func (s *CollectionService) CountDisplayed(ctx context.Context, id uint) (int64, error) {
	counts, err := s.displayedCounts(ctx, id)
	if err != nil {
		return 0, err
	}
	return counts[id], nil
}

// GetAllCollections lists collections by French name, optionally filtered by
// a case-insensitive match on the name in any language.
func (s *CollectionService) GetAllCollections(ctx context.Context, search string) ([]CollectionWithCount, error) {
	// Only the unfiltered list is cached.
	search = strings.TrimSpace(search)
	if search == "" {
		if cached, found := s.cache.get(collectionsCacheKey); found {
			return cached.([]CollectionWithCount), nil
		}
	}

	query := s.db.WithContext(ctx).Order("name_fr ASC, id ASC")
	if search != "" {
		op := likeOperator(s.db)
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(
			fmt.Sprintf(`(name_fr %[1]s ? ESCAPE '\' OR name_en %[1]s ? ESCAPE '\' OR name_wo %[1]s ? ESCAPE '\')`, op),
			pattern, pattern, pattern,
		)
	}

	var collections []models.CollectionModel
	if err := query.Find(&collections).Error; err != nil {
		return nil, err
	}

	counts, err := s.displayedCounts(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CollectionWithCount, 0, len(collections))
	for _, c := range collections {
		result = append(result, CollectionWithCount{CollectionModel: c, ArtifactCount: counts[c.ID]})
	}

	if search == "" {
		s.cache.set(collectionsCacheKey, result, collectionsCacheTTL)
	}
	return result, nil
}

// GetCollectionByID retrieves one collection with its displayed artifact count
func (s *CollectionService) GetCollectionByID(ctx context.Context, id uint) (*CollectionWithCount, error) {
	var collection models.CollectionModel
	if err := s.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	counts, err := s.displayedCounts(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CollectionWithCount{CollectionModel: collection, ArtifactCount: counts[id]}, nil
}

func validateCollection(c *models.CollectionModel) error {
	if strings.TrimSpace(c.Name.Fr) == "" {
		return fmt.Errorf("%w: name.fr is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Curator.Fr) == "" {
		return fmt.Errorf("%w: curator.fr is required", ErrInvalidInput)
	}
	return nil
}

// CreateCollection creates a new collection record in the database
func (s *CollectionService) CreateCollection(ctx context.Context, collection *models.CollectionModel) (*models.CollectionModel, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	collection.ID = 0
	if err := s.db.WithContext(ctx).Create(collection).Error; err != nil {
		return nil, err
	}
	s.cache.invalidate(collectionsCacheKey)
	return collection, nil
}

// UpdateCollection replaces the editable fields of an existing collection
func (s *CollectionService) UpdateCollection(ctx context.Context, id uint, updatedData *models.CollectionModel) (*models.CollectionModel, error) {
	if err := validateCollection(updatedData); err != nil {
		return nil, err
	}

	var collection models.CollectionModel
	if err := s.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	columns := localizedColumns("name_", "description_", "curator_")
	if err := s.db.WithContext(ctx).Model(&collection).Select(columns).Updates(updatedData).Error; err != nil {
		return nil, err
	}
	s.invalidateCache()

	if err := s.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// DeleteCollection deletes an empty collection. Collections that still hold
// artifacts are refused with ErrCollectionInUse.
func (s *CollectionService) DeleteCollection(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var held int64
		if err := tx.Model(&models.ArtifactModel{}).Where("collection_id = ?", id).Count(&held).Error; err != nil {
			return err
		}
		if held > 0 {
			return ErrCollectionInUse
		}

		result := tx.Delete(&models.CollectionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCollectionNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// invalidateCache drops the cached collection list and the featured lists,
// which embed collection names.
func (s *CollectionService) invalidateCache() {
	s.cache.invalidate(collectionsCacheKey)
	s.cache.invalidate(featuredCachePrefix)
}

// SaveCollectionImage stores the cover image of a collection and removes the previous one.
func (s *CollectionService) SaveCollectionImage(ctx context.Context, id uint, upload *Upload) (*models.CollectionModel, error) {
	var collection models.CollectionModel
	if err := s.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}

	var previous string
	if collection.Image != nil {
		previous = *collection.Image
	}
	rel, err := s.files.Save(storage.CollectionsDir, upload.Name, upload.Body)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&collection).Update("image", rel).Error; err != nil {
		_ = s.files.Remove(rel)
		return nil, err
	}

	if previous != "" && previous != rel {
		if err := s.files.Remove(previous); err != nil {
			s.log.Warn("could not remove previous collection image", zap.String("path", previous), zap.Error(err))
		}
	}
	collection.Image = &rel
	s.cache.invalidate(collectionsCacheKey)
	return &collection, nil
}
