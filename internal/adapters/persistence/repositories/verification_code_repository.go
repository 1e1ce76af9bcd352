package repositories

import (
	"context"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// verificationCodeRepository implements VerificationCodeRepository interface
type verificationCodeRepository struct {
	db *gorm.DB
}

// NewVerificationCodeRepository creates a new verification code repository
func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

// Upsert stores the pending code for an email, replacing any previous one
func (r *verificationCodeRepository) Upsert(ctx context.Context, code *models.VerificationCode) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code_hash", "attempts", "expires_at", "created_at"}),
	}).Create(code).Error
}

// GetByEmail gets the pending code for an email
func (r *verificationCodeRepository) GetByEmail(ctx context.Context, email string) (*models.VerificationCode, error) {
	var code models.VerificationCode
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&code).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &code, nil
}

// IncrementAttempts records one more wrong guess
func (r *verificationCodeRepository) IncrementAttempts(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.VerificationCode{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *verificationCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&models.VerificationCode{}).Error
}

// DeleteExpired deletes all expired codes (cleanup job)
func (r *verificationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.VerificationCode{})
	return result.RowsAffected, result.Error
}
