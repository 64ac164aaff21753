package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
	"github.com/ScholarStream/scholarship-service/internal/validator"
)

const defaultPageLimit = 9

// scholarshipUpdateColumns is the allow-list of mutable fields, keyed by
// JSON field name. Anything outside it is silently dropped from an update.
var scholarshipUpdateColumns = map[string]string{
	"scholarshipName":        "scholarship_name",
	"universityName":         "university_name",
	"universityCountry":      "university_country",
	"universityCity":         "university_city",
	"universityImage":        "university_image",
	"subjectCategory":        "subject_category",
	"scholarshipCategory":    "scholarship_category",
	"degree":                 "degree",
	"applicationFees":        "application_fees",
	"serviceCharge":          "service_charge",
	"applicationDeadline":    "application_deadline",
	"scholarshipDescription": "scholarship_description",
	"scholarshipPostDate":    "scholarship_post_date",
}

var scholarshipDateColumns = map[string]bool{
	"application_deadline":  true,
	"scholarship_post_date": true,
}

type scholarshipService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewScholarshipService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ScholarshipService {
	return &scholarshipService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *scholarshipService) List(ctx context.Context, filters repositories.ScholarshipFilters) (*ScholarshipListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = defaultPageLimit
	}

	scholarships, total, err := s.repo.Scholarship().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list scholarships: %w", err)
	}

	totalPages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))

	return &ScholarshipListResponse{
		Scholarships: scholarships,
		TotalPages:   totalPages,
		CurrentPage:  filters.Page,
		Total:        total,
	}, nil
}

func (s *scholarshipService) ListAll(ctx context.Context) ([]*models.Scholarship, error) {
	return s.repo.Scholarship().ListAll(ctx)
}

func (s *scholarshipService) GetByID(ctx context.Context, id uint) (*models.Scholarship, error) {
	scholarship, err := s.repo.Scholarship().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrScholarshipNotFound
		}
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	return scholarship, nil
}

func (s *scholarshipService) Create(ctx context.Context, req *CreateScholarshipRequest) (*models.Scholarship, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError("validation failed: %v", err)
	}

	deadline, err := parseDate(req.ApplicationDeadline)
	if err != nil {
		return nil, NewInvalidInputError("invalid applicationDeadline: %v", err)
	}
	postDate, err := parseDate(req.ScholarshipPostDate)
	if err != nil {
		return nil, NewInvalidInputError("invalid scholarshipPostDate: %v", err)
	}

	scholarship := &models.Scholarship{
		ScholarshipName:        req.ScholarshipName,
		UniversityName:         req.UniversityName,
		UniversityCountry:      req.UniversityCountry,
		UniversityCity:         req.UniversityCity,
		UniversityImage:        req.UniversityImage,
		SubjectCategory:        req.SubjectCategory,
		ScholarshipCategory:    req.ScholarshipCategory,
		Degree:                 req.Degree,
		ApplicationFees:        req.ApplicationFees,
		ServiceCharge:          req.ServiceCharge,
		ApplicationDeadline:    deadline,
		ScholarshipPostDate:    postDate,
		ScholarshipDescription: req.ScholarshipDescription,
	}
	if err := s.repo.Scholarship().Create(ctx, scholarship); err != nil {
		return nil, fmt.Errorf("failed to create scholarship: %w", err)
	}

	s.logger.Info("scholarship created", "id", scholarship.ID, "name", scholarship.ScholarshipName)
	return scholarship, nil
}

// Update filters the raw request body through the allow-list. A request that
// yields zero effective field changes is rejected as a client error.
func (s *scholarshipService) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	updates, err := filterScholarshipUpdate(fields)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return ErrNoFieldsToUpdate
	}

	if err := s.repo.Scholarship().UpdateFields(ctx, id, updates); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrScholarshipNotFound
		}
		return fmt.Errorf("failed to update scholarship: %w", err)
	}

	s.logger.Info("scholarship updated", "id", id, "fields", len(updates))
	return nil
}

func (s *scholarshipService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Scholarship().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrScholarshipNotFound
		}
		return fmt.Errorf("failed to delete scholarship: %w", err)
	}

	s.logger.Info("scholarship deleted", "id", id)
	return nil
}

// filterScholarshipUpdate keeps allow-listed fields only, translating JSON
// names to columns and coercing date strings.
func filterScholarshipUpdate(fields map[string]interface{}) (map[string]interface{}, error) {
	updates := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		column, ok := scholarshipUpdateColumns[name]
		if !ok {
			continue
		}
		if scholarshipDateColumns[column] {
			str, ok := value.(string)
			if !ok {
				return nil, NewInvalidInputError("invalid %s: expected a date string", name)
			}
			parsed, err := parseDate(str)
			if err != nil {
				return nil, NewInvalidInputError("invalid %s: %v", name, err)
			}
			value = parsed
		}
		updates[column] = value
	}
	return updates, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
