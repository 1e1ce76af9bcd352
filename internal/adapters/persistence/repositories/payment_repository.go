package repositories

import (
	"context"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/core/domain"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create records a payment. Payments are never updated afterwards.
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByRequestID(ctx context.Context, requestID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&payment).Error
	if err != nil {
		return nil, notFound(err, domain.ErrPaymentNotFound)
	}
	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).Order("payment_date ASC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) DeleteByRequestIDs(ctx context.Context, requestIDs []string) error {
	if len(requestIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("request_id IN ?", requestIDs).Delete(&models.Payment{}).Error
}
