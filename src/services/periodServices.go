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
	periodsCacheKey = "periods"
	periodsCacheTTL = 30 * time.Minute
)

type PeriodService struct {
	db    *gorm.DB
	cache *Cache
}

// NewPeriodService creates a new instance of PeriodService
func NewPeriodService(db *gorm.DB, cache *Cache) *PeriodService {
	return &PeriodService{db: db, cache: cache}
}

// GetAllPeriods retrieves every period in chronological order
func (s *PeriodService) GetAllPeriods(ctx context.Context) ([]models.PeriodModel, error) {
	if cached, found := s.cache.get(periodsCacheKey); found {
		return cached.([]models.PeriodModel), nil
	}

	var periods []models.PeriodModel
	if err := s.db.WithContext(ctx).Order("start_year ASC, id ASC").Find(&periods).Error; err != nil {
		return nil, err
	}

	s.cache.set(periodsCacheKey, periods, periodsCacheTTL)
	return periods, nil
}

// GetPeriodByID retrieves a period by its ID
func (s *PeriodService) GetPeriodByID(ctx context.Context, id uint) (*models.PeriodModel, error) {
	var period models.PeriodModel
	if err := s.db.WithContext(ctx).First(&period, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	return &period, nil
}

func validatePeriod(p *models.PeriodModel) error {
	if strings.TrimSpace(p.Name.Fr) == "" {
		return fmt.Errorf("%w: name.fr is required", ErrInvalidInput)
	}
	if p.StartYear != nil && p.EndYear != nil && *p.EndYear < *p.StartYear {
		return fmt.Errorf("%w: end_year is before start_year", ErrInvalidInput)
	}
	return nil
}

// CreatePeriod creates a new period record in the database
func (s *PeriodService) CreatePeriod(ctx context.Context, period *models.PeriodModel) (*models.PeriodModel, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	period.ID = 0
	if err := s.db.WithContext(ctx).Create(period).Error; err != nil {
		return nil, err
	}
	s.cache.invalidate(periodsCacheKey)
	return period, nil
}

// UpdatePeriod replaces the editable fields of an existing period
func (s *PeriodService) UpdatePeriod(ctx context.Context, id uint, updatedData *models.PeriodModel) (*models.PeriodModel, error) {
	if err := validatePeriod(updatedData); err != nil {
		return nil, err
	}

	period, err := s.GetPeriodByID(ctx, id)
	if err != nil {
		return nil, err
	}

	columns := append(localizedColumns("name_", "description_"), "start_year", "end_year")
	if err := s.db.WithContext(ctx).Model(period).Select(columns).Updates(updatedData).Error; err != nil {
		return nil, err
	}
	s.cache.invalidate(periodsCacheKey)
	s.cache.invalidate(featuredCachePrefix)
	return s.GetPeriodByID(ctx, id)
}

// DeletePeriod deletes a period and detaches the artifacts that referenced it
func (s *PeriodService) DeletePeriod(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ArtifactModel{}).Where("period_id = ?", id).Update("period_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.PeriodModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPeriodNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(periodsCacheKey)
	s.cache.invalidate(featuredCachePrefix)
	return nil
}
