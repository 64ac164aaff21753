package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ScholarStream/scholarship-service/internal/validator"
)

type mockGateway struct {
	receivedAmounts []int64
	clientSecret    string
	err             error
}

func (g *mockGateway) CreateIntent(_ context.Context, amountMinorUnits int64) (string, error) {
	g.receivedAmounts = append(g.receivedAmounts, amountMinorUnits)
	if g.err != nil {
		return "", g.err
	}
	return g.clientSecret, nil
}

func newTestPaymentService(gateway IntentCreator) PaymentService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPaymentService(gateway, logger, validator.New())
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{amount: 50.5, want: 5050},
		{amount: 0.1, want: 10},
		{amount: 19.99, want: 1999},
		{amount: 100, want: 10000},
		{amount: 0.005, want: 1},
	}
	for _, tt := range tests {
		if got := MinorUnits(tt.amount); got != tt.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestPaymentService_CreateIntent(t *testing.T) {
	gateway := &mockGateway{clientSecret: "pi_secret_123"}
	svc := newTestPaymentService(gateway)

	resp, err := svc.CreateIntent(context.Background(), &CreatePaymentIntentRequest{Amount: 50.5})
	if err != nil {
		t.Fatalf("CreateIntent failed: %v", err)
	}

	if resp.ClientSecret != "pi_secret_123" {
		t.Errorf("unexpected client secret %q", resp.ClientSecret)
	}
	if len(gateway.receivedAmounts) != 1 || gateway.receivedAmounts[0] != 5050 {
		t.Errorf("gateway should receive 5050 minor units, got %v", gateway.receivedAmounts)
	}
}

func TestPaymentService_CreateIntent_GatewayFailure(t *testing.T) {
	gateway := &mockGateway{err: errors.New("card declined")}
	svc := newTestPaymentService(gateway)

	_, err := svc.CreateIntent(context.Background(), &CreatePaymentIntentRequest{Amount: 10})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}

	// The gateway is called exactly once; failures are never retried.
	if len(gateway.receivedAmounts) != 1 {
		t.Errorf("expected a single gateway call, got %d", len(gateway.receivedAmounts))
	}
}

func TestPaymentService_CreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	gateway := &mockGateway{clientSecret: "pi_secret"}
	svc := newTestPaymentService(gateway)

	_, err := svc.CreateIntent(context.Background(), &CreatePaymentIntentRequest{Amount: 0})
	if !IsInvalidInputError(err) {
		t.Errorf("expected invalid input error, got %v", err)
	}
	if len(gateway.receivedAmounts) != 0 {
		t.Error("gateway must not be called for invalid input")
	}
}
