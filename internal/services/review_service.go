package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
	"github.com/ScholarStream/scholarship-service/internal/validator"
)

type reviewService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewReviewService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ReviewService {
	return &reviewService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *reviewService) ListAll(ctx context.Context) ([]*models.Review, error) {
	return s.repo.Review().ListAll(ctx)
}

func (s *reviewService) ListForScholarship(ctx context.Context, scholarshipID uint) ([]*models.Review, error) {
	return s.repo.Review().ListByScholarshipID(ctx, scholarshipID)
}

func (s *reviewService) ListForUser(ctx context.Context, email string) ([]*models.Review, error) {
	return s.repo.Review().ListByUserEmail(ctx, strings.ToLower(email))
}

func (s *reviewService) Create(ctx context.Context, ownerEmail string, req *CreateReviewRequest) (*models.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError("validation failed: %v", err)
	}

	review := &models.Review{
		ScholarshipID: req.ScholarshipID,
		UserEmail:     strings.ToLower(ownerEmail),
		RatingPoint:   req.RatingPoint,
		ReviewComment: req.ReviewComment,
	}
	if err := s.repo.Review().Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info("review created", "review_id", review.ID, "scholarship_id", review.ScholarshipID)
	return review, nil
}

// Update is restricted to the review's owner.
func (s *reviewService) Update(ctx context.Context, id uint, req *UpdateReviewRequest, requesterEmail string) error {
	if err := s.validator.Validate(req); err != nil {
		return NewInvalidInputError("validation failed: %v", err)
	}

	review, err := s.getReview(ctx, id)
	if err != nil {
		return err
	}

	requester := strings.ToLower(requesterEmail)
	if review.UserEmail != requester {
		return NewPermissionError(requester, "review", id, "update", "not the review owner")
	}

	if err := s.repo.Review().Update(ctx, id, req.RatingPoint, req.ReviewComment); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

// Delete is allowed for the owner and for the moderation tier.
func (s *reviewService) Delete(ctx context.Context, id uint, requesterEmail string) error {
	review, err := s.getReview(ctx, id)
	if err != nil {
		return err
	}

	requester := strings.ToLower(requesterEmail)
	if review.UserEmail != requester {
		allowed, err := s.hasModerationRole(ctx, requester)
		if err != nil {
			return err
		}
		if !allowed {
			return NewPermissionError(requester, "review", id, "delete", "not the review owner or a moderator")
		}
	}

	if err := s.repo.Review().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.logger.Info("review deleted", "review_id", id, "requested_by", requester)
	return nil
}

func (s *reviewService) getReview(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.repo.Review().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

func (s *reviewService) hasModerationRole(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up requester role: %w", err)
	}
	return user.Role == models.RoleModerator || user.Role == models.RoleAdmin, nil
}
