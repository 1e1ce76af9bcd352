package repositories

import (
	"context"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// officerRepository implements OfficerRepository interface
type officerRepository struct {
	db *gorm.DB
}

// NewOfficerRepository creates a new officer repository
func NewOfficerRepository(db *gorm.DB) OfficerRepository {
	return &officerRepository{db: db}
}

func (r *officerRepository) Create(ctx context.Context, officer *models.Officer) error {
	return r.db.WithContext(ctx).Create(officer).Error
}

func (r *officerRepository) GetByID(ctx context.Context, id string) (*models.Officer, error) {
	var officer models.Officer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&officer).Error
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}
	return &officer, nil
}

// GetByIdentifier matches an officer by code or by email
func (r *officerRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.Officer, error) {
	var officer models.Officer
	err := r.db.WithContext(ctx).
		Where("id = ? OR email = ?", identifier, identifier).
		First(&officer).Error
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}
	return &officer, nil
}

// ExistsByEmail checks if another officer already uses email
func (r *officerRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Officer{}).Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

const officerSequence = "officer"

// NextSeq takes the next officer sequence number. Numbers are never handed out
// twice, even after the officer holding the highest one is deleted. Call it inside
// the transaction that creates the officer.
func (r *officerRepository) NextSeq(ctx context.Context) (int, error) {
	db := r.db.WithContext(ctx)

	// The counter starts after any officer stored before it existed
	var maxSeq int
	if err := db.Model(&models.Officer{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
		return 0, err
	}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Sequence{Name: officerSequence, Counter: maxSeq}).Error
	if err != nil {
		return 0, err
	}

	err = db.Model(&models.Sequence{}).
		Where("name = ?", officerSequence).
		Update("counter", gorm.Expr("counter + 1")).Error
	if err != nil {
		return 0, err
	}

	var seq models.Sequence
	if err := db.Where("name = ?", officerSequence).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Counter, nil
}

func (r *officerRepository) Update(ctx context.Context, officer *models.Officer) error {
	return r.db.WithContext(ctx).Save(officer).Error
}

func (r *officerRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Officer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// List lists officers ordered by code, optionally filtered on name, code or email
func (r *officerRepository) List(ctx context.Context, search string) ([]*models.Officer, error) {
	var officers []*models.Officer

	query := r.db.WithContext(ctx).Model(&models.Officer{})
	if search != "" {
		pattern := likePattern(search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(id) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
	}

	err := query.Order("seq ASC").Find(&officers).Error
	return officers, err
}

func (r *officerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Officer{}).Count(&count).Error
	return count, err
}

// supervisorRepository implements SupervisorRepository interface
type supervisorRepository struct {
	db *gorm.DB
}

// NewSupervisorRepository creates a new supervisor repository
func NewSupervisorRepository(db *gorm.DB) SupervisorRepository {
	return &supervisorRepository{db: db}
}

func (r *supervisorRepository) Create(ctx context.Context, supervisor *models.Supervisor) error {
	return r.db.WithContext(ctx).Create(supervisor).Error
}

func (r *supervisorRepository) GetByID(ctx context.Context, id string) (*models.Supervisor, error) {
	var supervisor models.Supervisor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supervisor).Error
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}
	return &supervisor, nil
}

func (r *supervisorRepository) GetByEmail(ctx context.Context, email string) (*models.Supervisor, error) {
	var supervisor models.Supervisor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&supervisor).Error
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}
	return &supervisor, nil
}

func (r *supervisorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Supervisor{}).Count(&count).Error
	return count, err
}
