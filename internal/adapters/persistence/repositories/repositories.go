package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Repositories bundles every repository over one *gorm.DB handle.
// Inside Transaction the bundle passed to fn shares the open transaction.
type Repositories struct {
	db *gorm.DB

	Users        UserRepository
	Officers     OfficerRepository
	Supervisors  SupervisorRepository
	Sessions     SessionRepository
	Codes        VerificationCodeRepository
	Requests     RequestRepository
	Documents    DocumentRepository
	Certificates CertificateDataRepository
	Payments     PaymentRepository
	Grievances   GrievanceRepository
}

// New creates all repositories over db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		Users:        NewUserRepository(db),
		Officers:     NewOfficerRepository(db),
		Supervisors:  NewSupervisorRepository(db),
		Sessions:     NewSessionRepository(db),
		Codes:        NewVerificationCodeRepository(db),
		Requests:     NewRequestRepository(db),
		Documents:    NewDocumentRepository(db),
		Certificates: NewCertificateDataRepository(db),
		Payments:     NewPaymentRepository(db),
		Grievances:   NewGrievanceRepository(db),
	}
}

// Transaction runs fn in a database transaction. Returning an error rolls back every write.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// DB returns the underlying handle
func (r *Repositories) DB() *gorm.DB {
	return r.db
}

// notFound translates gorm's missing-row error into the given domain error
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// likePattern builds a LIKE pattern for a lower-cased column
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
