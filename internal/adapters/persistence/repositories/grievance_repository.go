package repositories

import (
	"context"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/core/domain"

	"gorm.io/gorm"
)

// grievanceRepository implements GrievanceRepository interface
type grievanceRepository struct {
	db *gorm.DB
}

// NewGrievanceRepository creates a new grievance repository
func NewGrievanceRepository(db *gorm.DB) GrievanceRepository {
	return &grievanceRepository{db: db}
}

func (r *grievanceRepository) Create(ctx context.Context, grievance *models.Grievance) error {
	return r.db.WithContext(ctx).Create(grievance).Error
}

func (r *grievanceRepository) GetByID(ctx context.Context, id string) (*models.Grievance, error) {
	var grievance models.Grievance
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&grievance).Error
	if err != nil {
		return nil, notFound(err, domain.ErrGrievanceNotFound)
	}
	return &grievance, nil
}

// List lists grievances oldest first
func (r *grievanceRepository) List(ctx context.Context, filter GrievanceFilter) ([]*models.Grievance, error) {
	var grievances []*models.Grievance

	query := r.db.WithContext(ctx).Model(&models.Grievance{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(id) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	err := query.Order("created_at ASC").Order("id ASC").Find(&grievances).Error
	return grievances, err
}

// Resolve moves a pending grievance to resolved. It reports false when the
// grievance is missing or already resolved.
func (r *grievanceRepository) Resolve(ctx context.Context, id, response, supervisorID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Grievance{}).
		Where("id = ?", id).
		Where("status = ?", string(domain.GrievancePending)).
		Updates(map[string]interface{}{
			"status":        string(domain.GrievanceResolved),
			"response":      response,
			"supervisor_id": supervisorID,
			"resolved_at":   at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *grievanceRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Grievance{}).Error
}
