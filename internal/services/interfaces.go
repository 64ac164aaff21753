package services

import (
	"context"

	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
)

// ===== REQUEST/RESPONSE DTOs =====

type RegisterUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"max=100"`
	PhotoURL *string `json:"photoURL" validate:"omitempty,max=500"`
}

type RegisterUserResponse struct {
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
	Created bool         `json:"created"`
}

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" validate:"required,oneof=Student Moderator Admin"`
}

type CreateScholarshipRequest struct {
	ScholarshipName        string  `json:"scholarshipName" validate:"required,max=255"`
	UniversityName         string  `json:"universityName" validate:"required,max=255"`
	UniversityCountry      string  `json:"universityCountry" validate:"required,max=100"`
	UniversityCity         string  `json:"universityCity" validate:"max=100"`
	UniversityImage        string  `json:"universityImage" validate:"omitempty,max=500"`
	SubjectCategory        string  `json:"subjectCategory" validate:"max=100"`
	ScholarshipCategory    string  `json:"scholarshipCategory" validate:"max=100"`
	Degree                 string  `json:"degree" validate:"max=100"`
	ApplicationFees        float64 `json:"applicationFees" validate:"gte=0"`
	ServiceCharge          float64 `json:"serviceCharge" validate:"gte=0"`
	ApplicationDeadline    string  `json:"applicationDeadline" validate:"required"`
	ScholarshipPostDate    string  `json:"scholarshipPostDate" validate:"required"`
	ScholarshipDescription string  `json:"scholarshipDescription"`
}

// ScholarshipListResponse mirrors the public listing contract: the page of
// documents plus pagination bookkeeping.
type ScholarshipListResponse struct {
	Scholarships []*models.Scholarship `json:"scholarships"`
	TotalPages   int                   `json:"totalPages"`
	CurrentPage  int                   `json:"currentPage"`
	Total        int64                 `json:"total"`
}

type SubmitApplicationRequest struct {
	ScholarshipID uint                   `json:"scholarshipId" validate:"required"`
	Details       map[string]interface{} `json:"details"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"applicationStatus" validate:"required,oneof=Pending Processing Completed Rejected"`
}

type UpdateFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,max=2000"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"paymentStatus" validate:"required,oneof=Unpaid Paid"`
}

type CreateReviewRequest struct {
	ScholarshipID uint    `json:"scholarshipId" validate:"required"`
	RatingPoint   float64 `json:"ratingPoint" validate:"required,min=1,max=5"`
	ReviewComment string  `json:"reviewComment" validate:"max=2000"`
}

type UpdateReviewRequest struct {
	RatingPoint   float64 `json:"ratingPoint" validate:"required,min=1,max=5"`
	ReviewComment string  `json:"reviewComment" validate:"max=2000"`
}

type CreatePaymentIntentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*RegisterUserResponse, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, email string, req *UpdateRoleRequest) error
	Delete(ctx context.Context, email string) error
}

type ScholarshipService interface {
	List(ctx context.Context, filters repositories.ScholarshipFilters) (*ScholarshipListResponse, error)
	ListAll(ctx context.Context) ([]*models.Scholarship, error)
	GetByID(ctx context.Context, id uint) (*models.Scholarship, error)
	Create(ctx context.Context, req *CreateScholarshipRequest) (*models.Scholarship, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

// ApplicationService owns the application lifecycle: submission, the
// moderation axis, the payment axis, and withdrawal.
type ApplicationService interface {
	Submit(ctx context.Context, ownerEmail string, req *SubmitApplicationRequest) (*models.Application, error)
	ListAll(ctx context.Context) ([]*models.Application, error)
	ListForOwner(ctx context.Context, email string) ([]*models.Application, error)
	SetStatus(ctx context.Context, id uint, req *UpdateApplicationStatusRequest, changedBy string) error
	SetFeedback(ctx context.Context, id uint, req *UpdateFeedbackRequest) error
	SetPaymentStatus(ctx context.Context, id uint, req *UpdatePaymentStatusRequest, requesterEmail string) error
	Withdraw(ctx context.Context, id uint, requesterEmail string) error
}

type ReviewService interface {
	ListAll(ctx context.Context) ([]*models.Review, error)
	ListForScholarship(ctx context.Context, scholarshipID uint) ([]*models.Review, error)
	ListForUser(ctx context.Context, email string) ([]*models.Review, error)
	Create(ctx context.Context, ownerEmail string, req *CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, id uint, req *UpdateReviewRequest, requesterEmail string) error
	Delete(ctx context.Context, id uint, requesterEmail string) error
}

type PaymentService interface {
	CreateIntent(ctx context.Context, req *CreatePaymentIntentRequest) (*CreatePaymentIntentResponse, error)
}

// ServiceManager aggregates all services behind one handle.
type ServiceManager interface {
	User() UserService
	Scholarship() ScholarshipService
	Application() ApplicationService
	Review() ReviewService
	Payment() PaymentService

	Shutdown(ctx context.Context) error
}
