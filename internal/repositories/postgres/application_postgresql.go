package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
)

type ApplicationPostgreSQL struct {
	db *gorm.DB
}

func NewApplicationPostgreSQL(db *gorm.DB) repositories.ApplicationRepository {
	return &ApplicationPostgreSQL{db: db}
}

func (a *ApplicationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	err := a.db.WithContext(ctx).First(&application, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &application, nil
}

func (a *ApplicationPostgreSQL) ListAll(ctx context.Context) ([]*models.Application, error) {
	var applications []*models.Application
	if err := a.db.WithContext(ctx).Order("created_at DESC").Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

func (a *ApplicationPostgreSQL) ListByUserEmail(ctx context.Context, email string) ([]*models.Application, error) {
	var applications []*models.Application
	err := a.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user applications: %w", err)
	}
	return applications, nil
}

func (a *ApplicationPostgreSQL) Create(ctx context.Context, application *models.Application) error {
	if err := a.db.WithContext(ctx).Create(application).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (a *ApplicationPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return a.updateColumn(ctx, id, "application_status", status)
}

func (a *ApplicationPostgreSQL) UpdateFeedback(ctx context.Context, id uint, feedback string) error {
	return a.updateColumn(ctx, id, "feedback", feedback)
}

func (a *ApplicationPostgreSQL) UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error {
	return a.updateColumn(ctx, id, "payment_status", status)
}

// updateColumn is a single-column last-write-wins overwrite. Concurrent
// writers race without an optimistic-concurrency token.
func (a *ApplicationPostgreSQL) updateColumn(ctx context.Context, id uint, column string, value interface{}) error {
	result := a.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update application %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (a *ApplicationPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := a.db.WithContext(ctx).Delete(&models.Application{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
