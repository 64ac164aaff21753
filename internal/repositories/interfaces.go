package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ScholarStream/scholarship-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// ScholarshipFilters drives the public scholarship listing. Search is a
// case-insensitive substring match over name, university and degree.
type ScholarshipFilters struct {
	Search   string
	Country  string
	Category string
	Sort     string // "fees-asc", "fees-desc", "date-asc", "date-desc"
	Page     int
	Limit    int
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, email string, role models.UserRole) error
	DeleteByEmail(ctx context.Context, email string) error
}

type ScholarshipRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Scholarship, error)
	List(ctx context.Context, filters ScholarshipFilters) ([]*models.Scholarship, int64, error)
	ListAll(ctx context.Context) ([]*models.Scholarship, error)
	Create(ctx context.Context, scholarship *models.Scholarship) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type ApplicationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	ListAll(ctx context.Context) ([]*models.Application, error)
	ListByUserEmail(ctx context.Context, email string) ([]*models.Application, error)
	Create(ctx context.Context, application *models.Application) error
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
	UpdateFeedback(ctx context.Context, id uint, feedback string) error
	UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error
	Delete(ctx context.Context, id uint) error
}

type ReviewRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	ListAll(ctx context.Context) ([]*models.Review, error)
	ListByScholarshipID(ctx context.Context, scholarshipID uint) ([]*models.Review, error)
	ListByUserEmail(ctx context.Context, email string) ([]*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id uint, ratingPoint float64, comment string) error
	Delete(ctx context.Context, id uint) error
}

// ===== ERROR HELPERS =====

// ErrNotFound is returned when a record id or email matches nothing.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err represents a missing record, from
// either this package or the underlying GORM call.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
