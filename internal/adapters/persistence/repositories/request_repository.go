package repositories

import (
	"context"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// requestRepository implements RequestRepository interface
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new certificate request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create inserts the request row only. Documents are stored through DocumentRepository.
func (r *requestRepository) Create(ctx context.Context, request *models.CertificateRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(request).Error
}

// GetByID gets a request with its documents in upload order
func (r *requestRepository) GetByID(ctx context.Context, id string) (*models.CertificateRequest, error) {
	var request models.CertificateRequest
	err := r.db.WithContext(ctx).
		Preload("Documents", orderDocuments).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, notFound(err, domain.ErrRequestNotFound)
	}
	return &request, nil
}

// List lists requests oldest first
func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]*models.CertificateRequest, error) {
	var requests []*models.CertificateRequest

	query := r.db.WithContext(ctx).Model(&models.CertificateRequest{}).Preload("Documents", orderDocuments)
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OfficerID != "" {
		query = query.Where("assigned_officer_id = ?", filter.OfficerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(id) LIKE ?", likePattern(filter.Search))
	}
	if filter.Since != nil {
		query = query.Where("submission_date >= ?", *filter.Since)
	}

	err := query.Order("submission_date ASC").Order("id ASC").Find(&requests).Error
	return requests, err
}

// IDsByUser returns the ids of every request owned by userID
func (r *requestRepository) IDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.CertificateRequest{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}

// Decide moves a pending request to a terminal status. It reports false when
// the request is missing or no longer pending.
func (r *requestRepository) Decide(ctx context.Context, id, status, comment, officerID string, approvalDate *time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CertificateRequest{}).
		Where("id = ?", id).
		Where("status = ?", string(domain.StatusPending)).
		Updates(map[string]interface{}{
			"status":              status,
			"officer_comment":     comment,
			"assigned_officer_id": officerID,
			"approval_date":       approvalDate,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *requestRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.CertificateRequest{}).Error
}

func orderDocuments(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// documentRepository implements DocumentRepository interface
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) CreateBatch(ctx context.Context, docs []*models.Document) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&docs).Error
}

func (r *documentRepository) DeleteByRequestIDs(ctx context.Context, requestIDs []string) error {
	if len(requestIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("request_id IN ?", requestIDs).Delete(&models.Document{}).Error
}
