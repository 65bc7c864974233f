package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service is the contract for charging a passenger after a completed
// trip. The dispatch engine never calls it; the API layer does.
type Service interface {
	ProcessPayment(ctx context.Context, passengerID string, amount float64) (string, error)
}

// StubGateway approves every well-formed charge and returns a receipt
// identifier. It stands in for a real processor integration.
type StubGateway struct{}

// NewStubGateway creates a stub payment gateway.
func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

// ProcessPayment validates the amount and returns a synthetic receipt ID.
func (g *StubGateway) ProcessPayment(_ context.Context, passengerID string, amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("invalid payment amount %.2f for passenger %s", amount, passengerID)
	}
	return "rcpt_" + uuid.NewString(), nil
}
