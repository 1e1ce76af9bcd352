package services

import (
	"context"
	"fmt"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/config"
	"certportal/internal/core/domain"

	"github.com/google/uuid"
)

// ChargeRequest is one fee charge sent to a payment gateway
type ChargeRequest struct {
	RequestID string
	Amount    float64
	Currency  string
}

// PaymentResult is what a gateway reports back for a charge
type PaymentResult struct {
	TransactionID string
	Status        domain.PaymentStatus
	PaidAt        time.Time
}

// PaymentGateway charges the certificate fee
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*PaymentResult, error)
}

// SimulatedGateway accepts every charge
type SimulatedGateway struct {
	now func() time.Time
}

// NewSimulatedGateway creates a gateway that always completes
func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{now: time.Now}
}

// Charge completes immediately with a TXN<unix-nanos> transaction id
func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := g.now()
	return &PaymentResult{
		TransactionID: fmt.Sprintf("TXN%d", now.UnixNano()),
		Status:        domain.PaymentCompleted,
		PaidAt:        now,
	}, nil
}

// ErrPaymentDeclined is returned when the gateway does not complete a charge
var ErrPaymentDeclined = fmt.Errorf("%w: declined", domain.ErrPaymentFailed)

// PaymentService records the fee payment of each certificate request
type PaymentService struct {
	repos    *repositories.Repositories
	gateway  PaymentGateway
	fee      float64
	currency string
}

// NewPaymentService creates a new payment service
func NewPaymentService(repos *repositories.Repositories, gateway PaymentGateway, cfg *config.Config) *PaymentService {
	return &PaymentService{
		repos:    repos,
		gateway:  gateway,
		fee:      cfg.Payment.Fee,
		currency: cfg.Payment.Currency,
	}
}

// Record charges the fee for requestID and stores the payment through payments,
// which is expected to be bound to the caller's transaction.
func (s *PaymentService) Record(ctx context.Context, payments repositories.PaymentRepository, requestID string) (*models.Payment, error) {
	result, err := s.gateway.Charge(ctx, ChargeRequest{
		RequestID: requestID,
		Amount:    s.fee,
		Currency:  s.currency,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: charge: %w", domain.ErrPaymentFailed, err)
	}
	if result.Status != domain.PaymentCompleted {
		return nil, fmt.Errorf("%w: status %s", ErrPaymentDeclined, result.Status)
	}

	payment := &models.Payment{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		Amount:        s.fee,
		Currency:      s.currency,
		Status:        string(result.Status),
		TransactionID: result.TransactionID,
		PaymentDate:   result.PaidAt,
	}
	if err := payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetByRequest gets the payment of a request
func (s *PaymentService) GetByRequest(ctx context.Context, requestID string) (*models.Payment, error) {
	return s.repos.Payments.GetByRequestID(ctx, requestID)
}
