package repositories

import (
	"context"
	"time"

	"certportal/internal/adapters/persistence/models"
)

// UserFilter narrows user listings
type UserFilter struct {
	Search   string
	Verified *bool
}

// RequestFilter narrows certificate request listings. Zero values match everything.
type RequestFilter struct {
	UserID    string
	OfficerID string
	Status    string
	Type      string
	Search    string
	Since     *time.Time
}

// GrievanceFilter narrows grievance listings
type GrievanceFilter struct {
	UserID string
	Status string
	Search string
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	MarkVerified(ctx context.Context, email string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter) ([]*models.User, error)
	Count(ctx context.Context) (total int64, verified int64, err error)
}

// OfficerRepository defines officer repository interface
type OfficerRepository interface {
	Create(ctx context.Context, officer *models.Officer) error
	GetByID(ctx context.Context, id string) (*models.Officer, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.Officer, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	NextSeq(ctx context.Context) (int, error)
	Update(ctx context.Context, officer *models.Officer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search string) ([]*models.Officer, error)
	Count(ctx context.Context) (int64, error)
}

// SupervisorRepository defines supervisor repository interface
type SupervisorRepository interface {
	Create(ctx context.Context, supervisor *models.Supervisor) error
	GetByID(ctx context.Context, id string) (*models.Supervisor, error)
	GetByEmail(ctx context.Context, email string) (*models.Supervisor, error)
	Count(ctx context.Context) (int64, error)
}

// SessionRepository defines session repository interface
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error
	RevokeAllByAccount(ctx context.Context, accountID string, at time.Time) error
	DeleteByAccount(ctx context.Context, accountID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// VerificationCodeRepository defines verification code repository interface
type VerificationCodeRepository interface {
	Upsert(ctx context.Context, code *models.VerificationCode) error
	GetByEmail(ctx context.Context, email string) (*models.VerificationCode, error)
	IncrementAttempts(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RequestRepository defines certificate request repository interface
type RequestRepository interface {
	Create(ctx context.Context, request *models.CertificateRequest) error
	GetByID(ctx context.Context, id string) (*models.CertificateRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]*models.CertificateRequest, error)
	IDsByUser(ctx context.Context, userID string) ([]string, error)
	Decide(ctx context.Context, id, status, comment, officerID string, approvalDate *time.Time) (bool, error)
	DeleteByIDs(ctx context.Context, ids []string) error
}

// DocumentRepository defines document repository interface
type DocumentRepository interface {
	CreateBatch(ctx context.Context, docs []*models.Document) error
	DeleteByRequestIDs(ctx context.Context, requestIDs []string) error
}

// CertificateDataRepository defines the type-specific payload repository interface
type CertificateDataRepository interface {
	CreateBirth(ctx context.Context, data *models.BirthCertificate) error
	CreateDeath(ctx context.Context, data *models.DeathCertificate) error
	GetBirth(ctx context.Context, requestID string) (*models.BirthCertificate, error)
	GetDeath(ctx context.Context, requestID string) (*models.DeathCertificate, error)
	DeleteByRequestIDs(ctx context.Context, requestIDs []string) error
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByRequestID(ctx context.Context, requestID string) (*models.Payment, error)
	List(ctx context.Context) ([]*models.Payment, error)
	DeleteByRequestIDs(ctx context.Context, requestIDs []string) error
}

// GrievanceRepository defines grievance repository interface
type GrievanceRepository interface {
	Create(ctx context.Context, grievance *models.Grievance) error
	GetByID(ctx context.Context, id string) (*models.Grievance, error)
	List(ctx context.Context, filter GrievanceFilter) ([]*models.Grievance, error)
	Resolve(ctx context.Context, id, response, supervisorID string, at time.Time) (bool, error)
	DeleteByUser(ctx context.Context, userID string) error
}
