package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/ScholarStream/scholarship-service/internal/validator"
)

// IntentCreator is the external payment-intent collaborator. It takes the
// amount in minor currency units and returns the opaque client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64) (string, error)
}

// UpstreamError wraps a gateway failure so the handler can surface the
// gateway's message as a client-facing 400. Gateway calls are never retried.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

type paymentService struct {
	gateway   IntentCreator
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPaymentService(gateway IntentCreator, logger *slog.Logger, validator *validator.Validator) PaymentService {
	return &paymentService{
		gateway:   gateway,
		logger:    logger,
		validator: validator,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, req *CreatePaymentIntentRequest) (*CreatePaymentIntentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError("validation failed: %v", err)
	}

	clientSecret, err := s.gateway.CreateIntent(ctx, MinorUnits(req.Amount))
	if err != nil {
		s.logger.Error("payment intent creation failed", "error", err)
		return nil, &UpstreamError{Err: fmt.Errorf("failed to create payment intent: %w", err)}
	}

	return &CreatePaymentIntentResponse{ClientSecret: clientSecret}, nil
}

// MinorUnits converts a major-unit amount to minor currency units, rounding
// to the nearest integer to avoid floating-point drift from client-supplied
// decimals.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
