package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/validator"
)

func newTestReviewService(repo *mockRepository) ReviewService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReviewService(repo, logger, validator.New())
}

func TestReviewService_Create(t *testing.T) {
	repo := newMockRepository()
	svc := newTestReviewService(repo)

	review, err := svc.Create(context.Background(), "A@X.com", &CreateReviewRequest{
		ScholarshipID: 1,
		RatingPoint:   4.5,
		ReviewComment: "great program",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if review.UserEmail != "a@x.com" {
		t.Errorf("expected lower-cased owner email, got %q", review.UserEmail)
	}
}

func TestReviewService_Create_RejectsOutOfRangeRating(t *testing.T) {
	svc := newTestReviewService(newMockRepository())

	_, err := svc.Create(context.Background(), "a@x.com", &CreateReviewRequest{
		ScholarshipID: 1,
		RatingPoint:   6,
	})
	if !IsInvalidInputError(err) {
		t.Errorf("expected invalid input error for rating 6, got %v", err)
	}
}

func TestReviewService_Update_OwnerOnly(t *testing.T) {
	repo := newMockRepository()
	svc := newTestReviewService(repo)
	ctx := context.Background()

	// Moderators may delete reviews but not edit them.
	repo.users.Create(ctx, &models.User{Email: "mod@x.com", Role: models.RoleModerator})

	review, err := svc.Create(ctx, "a@x.com", &CreateReviewRequest{ScholarshipID: 1, RatingPoint: 3})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := &UpdateReviewRequest{RatingPoint: 5, ReviewComment: "revised"}
	if err := svc.Update(ctx, review.ID, req, "mod@x.com"); !IsPermissionError(err) {
		t.Errorf("expected permission error for non-owner update, got %v", err)
	}

	if err := svc.Update(ctx, review.ID, req, "a@x.com"); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	stored, _ := repo.reviews.GetByID(ctx, review.ID)
	if stored.RatingPoint != 5 || stored.ReviewComment != "revised" {
		t.Errorf("update not applied, got %+v", stored)
	}
}

func TestReviewService_Delete_OwnerOrModeration(t *testing.T) {
	repo := newMockRepository()
	svc := newTestReviewService(repo)
	ctx := context.Background()

	repo.users.Create(ctx, &models.User{Email: "mod@x.com", Role: models.RoleModerator})
	repo.users.Create(ctx, &models.User{Email: "other@x.com", Role: models.RoleStudent})

	first, _ := svc.Create(ctx, "a@x.com", &CreateReviewRequest{ScholarshipID: 1, RatingPoint: 3})
	second, _ := svc.Create(ctx, "a@x.com", &CreateReviewRequest{ScholarshipID: 2, RatingPoint: 4})

	if err := svc.Delete(ctx, first.ID, "other@x.com"); !IsPermissionError(err) {
		t.Errorf("expected permission error for unrelated student, got %v", err)
	}
	if err := svc.Delete(ctx, first.ID, "a@x.com"); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if err := svc.Delete(ctx, second.ID, "mod@x.com"); err != nil {
		t.Errorf("moderator delete failed: %v", err)
	}
}

func TestReviewService_Delete_NotFound(t *testing.T) {
	svc := newTestReviewService(newMockRepository())

	if err := svc.Delete(context.Background(), 999, "a@x.com"); !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("expected ErrReviewNotFound, got %v", err)
	}
}
