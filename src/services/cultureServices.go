package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/models"
)

const (
	culturesCacheKey = "cultures"
	culturesCacheTTL = 30 * time.Minute
)

type CultureService struct {
	db    *gorm.DB
	cache *Cache
}

// NewCultureService creates a new instance of CultureService
func NewCultureService(db *gorm.DB, cache *Cache) *CultureService {
	return &CultureService{db: db, cache: cache}
}

// GetAllCultures retrieves every culture ordered by French name
func (s *CultureService) GetAllCultures(ctx context.Context) ([]models.CultureModel, error) {
	if cached, found := s.cache.get(culturesCacheKey); found {
		return cached.([]models.CultureModel), nil
	}

	var cultures []models.CultureModel
	if err := s.db.WithContext(ctx).Order("name_fr ASC, id ASC").Find(&cultures).Error; err != nil {
		return nil, err
	}

	s.cache.set(culturesCacheKey, cultures, culturesCacheTTL)
	return cultures, nil
}

// GetCultureByID retrieves a culture by its ID
func (s *CultureService) GetCultureByID(ctx context.Context, id uint) (*models.CultureModel, error) {
	var culture models.CultureModel
	if err := s.db.WithContext(ctx).First(&culture, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCultureNotFound
		}
		return nil, err
	}
	return &culture, nil
}

func validateCulture(c *models.CultureModel) error {
	if strings.TrimSpace(c.Name.Fr) == "" {
		return fmt.Errorf("%w: name.fr is required", ErrInvalidInput)
	}
	return nil
}

// CreateCulture creates a new culture record in the database
func (s *CultureService) CreateCulture(ctx context.Context, culture *models.CultureModel) (*models.CultureModel, error) {
	if err := validateCulture(culture); err != nil {
		return nil, err
	}
	culture.ID = 0
	if err := s.db.WithContext(ctx).Create(culture).Error; err != nil {
		return nil, err
	}
	s.cache.invalidate(culturesCacheKey)
	return culture, nil
}

// UpdateCulture replaces the name and description of an existing culture
func (s *CultureService) UpdateCulture(ctx context.Context, id uint, updatedData *models.CultureModel) (*models.CultureModel, error) {
	if err := validateCulture(updatedData); err != nil {
		return nil, err
	}

	culture, err := s.GetCultureByID(ctx, id)
	if err != nil {
		return nil, err
	}

	columns := localizedColumns("name_", "description_")
	if err := s.db.WithContext(ctx).Model(culture).Select(columns).Updates(updatedData).Error; err != nil {
		return nil, err
	}
	s.cache.invalidate(culturesCacheKey)
	s.cache.invalidate(featuredCachePrefix)
	return s.GetCultureByID(ctx, id)
}

// DeleteCulture deletes a culture and detaches the artifacts that referenced it
func (s *CultureService) DeleteCulture(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ArtifactModel{}).Where("culture_id = ?", id).Update("culture_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CultureModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCultureNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(culturesCacheKey)
	s.cache.invalidate(featuredCachePrefix)
	return nil
}
