package repositories

import (
	"context"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/core/domain"

	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByID gets a session by ID, revoked or not
func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, notFound(err, domain.ErrSessionNotFound)
	}
	return &session, nil
}

// Revoke revokes a session by ID. Revoking twice is a no-op.
func (r *sessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		Update("revoked_at", &at).Error
}

// RevokeAllByAccount revokes all sessions for an account
func (r *sessionRepository) RevokeAllByAccount(ctx context.Context, accountID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("account_id = ?", accountID).
		Where("revoked_at IS NULL").
		Update("revoked_at", &at).Error
}

// DeleteByAccount removes every session row of an account
func (r *sessionRepository) DeleteByAccount(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&models.Session{}).Error
}

// DeleteExpired deletes all expired or revoked sessions (cleanup job)
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", now).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
