package services

import (
	"context"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/core/domain"
)

// Note: implementations live in the *_service.go files of this package.
// Handlers depend on these interfaces so they can be tested with fakes.

// Authenticator defines the identity store operations used by HTTP handlers
type Authenticator interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterResult, error)
	Verify(ctx context.Context, email, code string) (bool, error)
	ResendCode(ctx context.Context, email string) (string, error)
	Authenticate(ctx context.Context, identifier, password, role string) (*domain.Session, error)
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)
	EndSession(ctx context.Context, sessionID string) error
}

// RequestLedger defines the certificate request operations
type RequestLedger interface {
	Submit(ctx context.Context, userID string, input *SubmitInput) (*models.CertificateRequest, error)
	ListForUser(ctx context.Context, userID, status string) ([]*models.CertificateRequest, error)
	ListAll(ctx context.Context, input ListRequestsInput) ([]*models.CertificateRequest, error)
	ListIssued(ctx context.Context, userID string) ([]*models.CertificateRequest, error)
	Get(ctx context.Context, requestID string) (*RequestDetails, error)
	Decide(ctx context.Context, requestID, decision, comment, officerID string) (*models.CertificateRequest, error)
}

// GrievanceLedger defines the grievance operations
type GrievanceLedger interface {
	File(ctx context.Context, userID, description string) (*models.Grievance, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Grievance, error)
	ListAll(ctx context.Context, input ListGrievancesInput) ([]*models.Grievance, error)
	Get(ctx context.Context, id string) (*models.Grievance, error)
	Resolve(ctx context.Context, id, response, supervisorID string) (*models.Grievance, error)
}

var (
	_ Authenticator   = (*AuthService)(nil)
	_ RequestLedger   = (*CertificateService)(nil)
	_ GrievanceLedger = (*GrievanceService)(nil)
	_ Notifier        = (*NotificationService)(nil)
	_ PaymentGateway  = (*SimulatedGateway)(nil)
)
