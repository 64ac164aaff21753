package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ScholarStream/scholarship-service/internal/events"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
	"github.com/ScholarStream/scholarship-service/internal/validator"
)

// serviceManager wires every service to the shared repository, publisher,
// logger and validator.
type serviceManager struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator

	userService        UserService
	scholarshipService ScholarshipService
	applicationService ApplicationService
	reviewService      ReviewService
	paymentService     PaymentService

	shutdown bool
	mu       sync.RWMutex
}

func NewServiceManager(
	repo repositories.Repository,
	publisher events.EventPublisher,
	gateway IntentCreator,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,

		userService:        NewUserService(repo, logger, validator),
		scholarshipService: NewScholarshipService(repo, logger, validator),
		applicationService: NewApplicationService(repo, publisher, logger, validator),
		reviewService:      NewReviewService(repo, logger, validator),
		paymentService:     NewPaymentService(gateway, logger, validator),
	}
}

func (m *serviceManager) User() UserService               { return m.userService }
func (m *serviceManager) Scholarship() ScholarshipService { return m.scholarshipService }
func (m *serviceManager) Application() ApplicationService { return m.applicationService }
func (m *serviceManager) Review() ReviewService           { return m.reviewService }
func (m *serviceManager) Payment() PaymentService         { return m.paymentService }

func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return nil
	}
	m.shutdown = true

	if err := m.publisher.Close(); err != nil {
		m.logger.Error("failed to close event publisher", "error", err)
		return err
	}
	return nil
}
