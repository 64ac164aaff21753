package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ScholarStream/scholarship-service/internal/cache"
	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
)

type ScholarshipPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewScholarshipPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ScholarshipRepository {
	return &ScholarshipPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// GetByID retrieves one scholarship, served from cache when possible.
func (s *ScholarshipPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Scholarship, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var scholarship models.Scholarship

	err := s.cacheManager.Scholarship.CacheOrExecute(ctx, cacheKey, &scholarship, cache.ScholarshipTTL, func() (interface{}, error) {
		var row models.Scholarship
		if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
			return nil, err
		}
		return &row, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	return &scholarship, nil
}

type scholarshipPage struct {
	Items []*models.Scholarship `json:"items"`
	Total int64                 `json:"total"`
}

// List applies search, country and category filters with sorting and
// pagination, returning the page plus the total match count. Pages are
// cached per filter combination and invalidated on any write.
func (s *ScholarshipPostgreSQL) List(ctx context.Context, filters repositories.ScholarshipFilters) ([]*models.Scholarship, int64, error) {
	cacheKey := fmt.Sprintf("list:%s|%s|%s|%s|%d|%d",
		filters.Search, filters.Country, filters.Category, filters.Sort, filters.Page, filters.Limit)

	var page scholarshipPage
	err := s.cacheManager.Scholarship.CacheOrExecute(ctx, cacheKey, &page, cache.ScholarshipTTL, func() (interface{}, error) {
		items, total, err := s.listFromDB(ctx, filters)
		if err != nil {
			return nil, err
		}
		return &scholarshipPage{Items: items, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

func (s *ScholarshipPostgreSQL) listFromDB(ctx context.Context, filters repositories.ScholarshipFilters) ([]*models.Scholarship, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Scholarship{})

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(
			"scholarship_name ILIKE ? OR university_name ILIKE ? OR degree ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filters.Country != "" {
		query = query.Where("university_country = ?", filters.Country)
	}
	if filters.Category != "" {
		query = query.Where("scholarship_category = ?", filters.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count scholarships: %w", err)
	}

	switch filters.Sort {
	case "fees-asc":
		query = query.Order("application_fees ASC")
	case "fees-desc":
		query = query.Order("application_fees DESC")
	case "date-asc":
		query = query.Order("scholarship_post_date ASC")
	case "date-desc":
		query = query.Order("scholarship_post_date DESC")
	}

	offset := (filters.Page - 1) * filters.Limit

	var scholarships []*models.Scholarship
	if err := query.Offset(offset).Limit(filters.Limit).Find(&scholarships).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list scholarships: %w", err)
	}
	return scholarships, total, nil
}

func (s *ScholarshipPostgreSQL) ListAll(ctx context.Context) ([]*models.Scholarship, error) {
	var scholarships []*models.Scholarship
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&scholarships).Error; err != nil {
		return nil, fmt.Errorf("failed to list scholarships: %w", err)
	}
	return scholarships, nil
}

func (s *ScholarshipPostgreSQL) Create(ctx context.Context, scholarship *models.Scholarship) error {
	if err := s.db.WithContext(ctx).Create(scholarship).Error; err != nil {
		return fmt.Errorf("failed to create scholarship: %w", err)
	}
	s.invalidate(ctx, scholarship.ID)
	return nil
}

// UpdateFields applies a pre-filtered field map. The allow-list lives in the
// service layer; this method trusts its input.
func (s *ScholarshipPostgreSQL) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&models.Scholarship{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update scholarship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ScholarshipPostgreSQL) Delete(ctx context.Context, id uint) error {
	// No cascade: applications and reviews keep their scholarship reference.
	result := s.db.WithContext(ctx).Delete(&models.Scholarship{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete scholarship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ScholarshipPostgreSQL) invalidate(ctx context.Context, id uint) {
	_ = s.cacheManager.Scholarship.Delete(ctx, fmt.Sprintf("id:%d", id))
	_ = s.cacheManager.Scholarship.InvalidatePattern(ctx, "list:*")
}
