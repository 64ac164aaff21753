package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ScholarStream/scholarship-service/internal/events"
	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
	"github.com/ScholarStream/scholarship-service/internal/validator"
)

// applicationService owns the application lifecycle. The record carries two
// orthogonal axes: the moderation status (an unconstrained overwrite by
// Moderator/Admin input, deliberately not a guarded state machine) and the
// payment status (one-way Unpaid to Paid, idempotent).
type applicationService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewApplicationService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ApplicationService {
	return &applicationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Submit creates an application with default Pending/Unpaid axes. There is
// no duplicate-submission guard: a user may apply to the same scholarship
// any number of times.
func (s *applicationService) Submit(ctx context.Context, ownerEmail string, req *SubmitApplicationRequest) (*models.Application, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError("validation failed: %v", err)
	}

	application := &models.Application{
		UserEmail:     strings.ToLower(ownerEmail),
		ScholarshipID: req.ScholarshipID,
		Status:        models.ApplicationPending,
		PaymentStatus: models.PaymentUnpaid,
	}

	if len(req.Details) > 0 {
		details, err := json.Marshal(req.Details)
		if err != nil {
			return nil, NewInvalidInputError("invalid details payload: %v", err)
		}
		application.Details = details
	}

	if err := s.repo.Application().Create(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	s.logger.Info("application submitted",
		"application_id", application.ID,
		"user_email", application.UserEmail,
		"scholarship_id", application.ScholarshipID,
	)
	s.publish(events.NewEvent(events.TypeApplicationSubmitted, events.ApplicationSubmitted{
		ApplicationID: application.ID,
		UserEmail:     application.UserEmail,
		ScholarshipID: application.ScholarshipID,
	}))

	return application, nil
}

func (s *applicationService) ListAll(ctx context.Context) ([]*models.Application, error) {
	return s.repo.Application().ListAll(ctx)
}

func (s *applicationService) ListForOwner(ctx context.Context, email string) ([]*models.Application, error) {
	return s.repo.Application().ListByUserEmail(ctx, strings.ToLower(email))
}

// SetStatus overwrites the moderation axis. Any known status may replace any
// other; a Moderator moving Completed back to Pending is allowed.
func (s *applicationService) SetStatus(ctx context.Context, id uint, req *UpdateApplicationStatusRequest, changedBy string) error {
	if err := s.validator.Validate(req); err != nil {
		return NewInvalidInputError("validation failed: %v", err)
	}

	if err := s.repo.Application().UpdateStatus(ctx, id, req.Status); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to update application status: %w", err)
	}

	s.logger.Info("application status updated", "application_id", id, "status", req.Status)
	s.publish(events.NewEvent(events.TypeApplicationStatusChanged, events.ApplicationStatusChanged{
		ApplicationID: id,
		Status:        req.Status,
		ChangedBy:     changedBy,
	}))
	return nil
}

func (s *applicationService) SetFeedback(ctx context.Context, id uint, req *UpdateFeedbackRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return NewInvalidInputError("validation failed: %v", err)
	}

	if err := s.repo.Application().UpdateFeedback(ctx, id, req.Feedback); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to update application feedback: %w", err)
	}

	s.logger.Info("application feedback updated", "application_id", id)
	return nil
}

// SetPaymentStatus is a self-service action of the applicant, not gated by
// role. The payment axis is one-way: setting the current value again is a
// no-op, reverting Paid to Unpaid is rejected.
func (s *applicationService) SetPaymentStatus(ctx context.Context, id uint, req *UpdatePaymentStatusRequest, requesterEmail string) error {
	if err := s.validator.Validate(req); err != nil {
		return NewInvalidInputError("validation failed: %v", err)
	}

	application, err := s.getApplication(ctx, id)
	if err != nil {
		return err
	}

	requester := strings.ToLower(requesterEmail)
	if application.UserEmail != requester {
		return NewPermissionError(requester, "application", id, "update payment", "not the applicant")
	}

	if application.PaymentStatus == req.PaymentStatus {
		return nil
	}
	if application.PaymentStatus == models.PaymentPaid {
		return NewInvalidInputError("payment status cannot revert from Paid")
	}

	if err := s.repo.Application().UpdatePaymentStatus(ctx, id, req.PaymentStatus); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	s.logger.Info("application payment updated", "application_id", id, "payment_status", req.PaymentStatus)
	s.publish(events.NewEvent(events.TypeApplicationPaymentUpdate, events.ApplicationPaymentUpdated{
		ApplicationID: id,
		PaymentStatus: req.PaymentStatus,
	}))
	return nil
}

// Withdraw deletes the record with no status precondition: a Paid
// application can be withdrawn, and no refund is attempted. Allowed for the
// owner and for the moderation tier.
func (s *applicationService) Withdraw(ctx context.Context, id uint, requesterEmail string) error {
	application, err := s.getApplication(ctx, id)
	if err != nil {
		return err
	}

	requester := strings.ToLower(requesterEmail)
	if application.UserEmail != requester {
		allowed, err := s.hasModerationRole(ctx, requester)
		if err != nil {
			return err
		}
		if !allowed {
			return NewPermissionError(requester, "application", id, "withdraw", "not the applicant or a moderator")
		}
	}

	if err := s.repo.Application().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to withdraw application: %w", err)
	}

	s.logger.Info("application withdrawn", "application_id", id, "requested_by", requester)
	s.publish(events.NewEvent(events.TypeApplicationWithdrawn, events.ApplicationWithdrawn{
		ApplicationID: id,
		RequestedBy:   requester,
	}))
	return nil
}

func (s *applicationService) getApplication(ctx context.Context, id uint) (*models.Application, error) {
	application, err := s.repo.Application().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return application, nil
}

// hasModerationRole re-reads the user's current role from the store; token
// claims are never trusted for privilege decisions.
func (s *applicationService) hasModerationRole(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up requester role: %w", err)
	}
	return user.Role == models.RoleModerator || user.Role == models.RoleAdmin, nil
}

func (s *applicationService) publish(event events.Event) {
	if err := s.publisher.Publish(event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}
