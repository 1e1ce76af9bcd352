package repositories

import (
	"context"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/core/domain"

	"gorm.io/gorm"
)

// certificateDataRepository implements CertificateDataRepository interface
type certificateDataRepository struct {
	db *gorm.DB
}

// NewCertificateDataRepository creates a new birth/death payload repository
func NewCertificateDataRepository(db *gorm.DB) CertificateDataRepository {
	return &certificateDataRepository{db: db}
}

func (r *certificateDataRepository) CreateBirth(ctx context.Context, data *models.BirthCertificate) error {
	return r.db.WithContext(ctx).Create(data).Error
}

func (r *certificateDataRepository) CreateDeath(ctx context.Context, data *models.DeathCertificate) error {
	return r.db.WithContext(ctx).Create(data).Error
}

func (r *certificateDataRepository) GetBirth(ctx context.Context, requestID string) (*models.BirthCertificate, error) {
	var data models.BirthCertificate
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&data).Error
	if err != nil {
		return nil, notFound(err, domain.ErrRequestNotFound)
	}
	return &data, nil
}

func (r *certificateDataRepository) GetDeath(ctx context.Context, requestID string) (*models.DeathCertificate, error) {
	var data models.DeathCertificate
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&data).Error
	if err != nil {
		return nil, notFound(err, domain.ErrRequestNotFound)
	}
	return &data, nil
}

// DeleteByRequestIDs removes both payload kinds for the given requests
func (r *certificateDataRepository) DeleteByRequestIDs(ctx context.Context, requestIDs []string) error {
	if len(requestIDs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("request_id IN ?", requestIDs).Delete(&models.BirthCertificate{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("request_id IN ?", requestIDs).Delete(&models.DeathCertificate{}).Error
}
