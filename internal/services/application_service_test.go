package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ScholarStream/scholarship-service/internal/events"
	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/validator"
)

func newTestApplicationService(repo *mockRepository) (ApplicationService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := events.NewMockEventPublisher(logger)
	return NewApplicationService(repo, publisher, logger, validator.New()), publisher
}

func TestApplicationService_Submit_Defaults(t *testing.T) {
	repo := newMockRepository()
	svc, publisher := newTestApplicationService(repo)
	ctx := context.Background()

	app, err := svc.Submit(ctx, "A@X.com", &SubmitApplicationRequest{
		ScholarshipID: 1,
		Details:       map[string]interface{}{"phone": "555-0100"},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if app.Status != models.ApplicationPending {
		t.Errorf("expected default status Pending, got %s", app.Status)
	}
	if app.PaymentStatus != models.PaymentUnpaid {
		t.Errorf("expected default payment status Unpaid, got %s", app.PaymentStatus)
	}
	if app.UserEmail != "a@x.com" {
		t.Errorf("expected lower-cased owner email, got %q", app.UserEmail)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeApplicationSubmitted {
		t.Errorf("expected one submitted event, got %+v", published)
	}
}

func TestApplicationService_Submit_NoDuplicateGuard(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestApplicationService(repo)
	ctx := context.Background()

	req := &SubmitApplicationRequest{ScholarshipID: 1}
	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, "a@x.com", req); err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
	}

	apps, err := svc.ListForOwner(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("ListForOwner failed: %v", err)
	}
	if len(apps) != 3 {
		t.Errorf("expected 3 applications for the same scholarship, got %d", len(apps))
	}
}

func TestApplicationService_SetPaymentStatus_Idempotent(t *testing.T) {
	repo := newMockRepository()
	svc, publisher := newTestApplicationService(repo)
	ctx := context.Background()

	app, err := svc.Submit(ctx, "a@x.com", &SubmitApplicationRequest{ScholarshipID: 1})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	publisher.ClearEvents()

	req := &UpdatePaymentStatusRequest{PaymentStatus: models.PaymentPaid}
	if err := svc.SetPaymentStatus(ctx, app.ID, req, "a@x.com"); err != nil {
		t.Fatalf("first SetPaymentStatus failed: %v", err)
	}
	if err := svc.SetPaymentStatus(ctx, app.ID, req, "a@x.com"); err != nil {
		t.Fatalf("second SetPaymentStatus should be a no-op, got %v", err)
	}

	stored, _ := repo.applications.GetByID(ctx, app.ID)
	if stored.PaymentStatus != models.PaymentPaid {
		t.Errorf("expected Paid, got %s", stored.PaymentStatus)
	}

	if published := publisher.GetPublishedEvents(); len(published) != 1 {
		t.Errorf("expected exactly one payment event, got %d", len(published))
	}
}

func TestApplicationService_SetPaymentStatus_NoRevert(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestApplicationService(repo)
	ctx := context.Background()

	app, _ := svc.Submit(ctx, "a@x.com", &SubmitApplicationRequest{ScholarshipID: 1})
	paid := &UpdatePaymentStatusRequest{PaymentStatus: models.PaymentPaid}
	if err := svc.SetPaymentStatus(ctx, app.ID, paid, "a@x.com"); err != nil {
		t.Fatalf("SetPaymentStatus failed: %v", err)
	}

	unpaid := &UpdatePaymentStatusRequest{PaymentStatus: models.PaymentUnpaid}
	err := svc.SetPaymentStatus(ctx, app.ID, unpaid, "a@x.com")
	if !IsInvalidInputError(err) {
		t.Errorf("expected invalid input error on Paid -> Unpaid, got %v", err)
	}
}

func TestApplicationService_SetPaymentStatus_OwnerOnly(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestApplicationService(repo)
	ctx := context.Background()

	app, _ := svc.Submit(ctx, "a@x.com", &SubmitApplicationRequest{ScholarshipID: 1})

	req := &UpdatePaymentStatusRequest{PaymentStatus: models.PaymentPaid}
	err := svc.SetPaymentStatus(ctx, app.ID, req, "b@x.com")
	if !IsPermissionError(err) {
		t.Errorf("expected permission error for non-applicant, got %v", err)
	}
}

func TestApplicationService_SetStatus_UnconstrainedOverwrite(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestApplicationService(repo)
	ctx := context.Background()

	app, _ := svc.Submit(ctx, "a@x.com", &SubmitApplicationRequest{ScholarshipID: 1})

	// Forward progression, then a backwards move: both allowed.
	sequence := []models.ApplicationStatus{
		models.ApplicationProcessing,
		models.ApplicationCompleted,
		models.ApplicationPending,
	}
	for _, status := range sequence {
		req := &UpdateApplicationStatusRequest{Status: status}
		if err := svc.SetStatus(ctx, app.ID, req, "mod@x.com"); err != nil {
			t.Fatalf("SetStatus(%s) failed: %v", status, err)
		}
	}

	stored, _ := repo.applications.GetByID(ctx, app.ID)
	if stored.Status != models.ApplicationPending {
		t.Errorf("expected final status Pending, got %s", stored.Status)
	}
}

func TestApplicationService_SetStatus_NotFound(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestApplicationService(repo)

	req := &UpdateApplicationStatusRequest{Status: models.ApplicationProcessing}
	err := svc.SetStatus(context.Background(), 999, req, "mod@x.com")
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplicationService_StatusAndPaymentAxesIndependent(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestApplicationService(repo)
	ctx := context.Background()

	app, _ := svc.Submit(ctx, "a@x.com", &SubmitApplicationRequest{ScholarshipID: 1})

	pay := &UpdatePaymentStatusRequest{PaymentStatus: models.PaymentPaid}
	if err := svc.SetPaymentStatus(ctx, app.ID, pay, "a@x.com"); err != nil {
		t.Fatalf("SetPaymentStatus failed: %v", err)
	}
	reject := &UpdateApplicationStatusRequest{Status: models.ApplicationRejected}
	if err := svc.SetStatus(ctx, app.ID, reject, "mod@x.com"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	// A Rejected application stays Paid; there is no auto-refund.
	stored, _ := repo.applications.GetByID(ctx, app.ID)
	if stored.Status != models.ApplicationRejected || stored.PaymentStatus != models.PaymentPaid {
		t.Errorf("axes should be independent, got status=%s payment=%s", stored.Status, stored.PaymentStatus)
	}
}

func TestApplicationService_Withdraw_Permissions(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestApplicationService(repo)
	ctx := context.Background()

	repo.users.Create(ctx, &models.User{Email: "mod@x.com", Role: models.RoleModerator})
	repo.users.Create(ctx, &models.User{Email: "other@x.com", Role: models.RoleStudent})

	app, _ := svc.Submit(ctx, "a@x.com", &SubmitApplicationRequest{ScholarshipID: 1})

	if err := svc.Withdraw(ctx, app.ID, "other@x.com"); !IsPermissionError(err) {
		t.Errorf("expected permission error for unrelated student, got %v", err)
	}

	if err := svc.Withdraw(ctx, app.ID, "mod@x.com"); err != nil {
		t.Errorf("moderator withdraw should succeed, got %v", err)
	}

	// Paid applications can be withdrawn by the owner with no precondition.
	app2, _ := svc.Submit(ctx, "a@x.com", &SubmitApplicationRequest{ScholarshipID: 2})
	pay := &UpdatePaymentStatusRequest{PaymentStatus: models.PaymentPaid}
	if err := svc.SetPaymentStatus(ctx, app2.ID, pay, "a@x.com"); err != nil {
		t.Fatalf("SetPaymentStatus failed: %v", err)
	}
	if err := svc.Withdraw(ctx, app2.ID, "a@x.com"); err != nil {
		t.Errorf("owner withdraw of paid application should succeed, got %v", err)
	}
}
