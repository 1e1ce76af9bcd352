package repositories

import (
	"context"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}
	return &user, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// MarkVerified flips is_verified for the user with email
func (r *userRepository) MarkVerified(ctx context.Context, email string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("is_verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// Delete deletes a user
func (r *userRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// List lists users in registration order
func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	var users []*models.User

	query := r.db.WithContext(ctx).Model(&models.User{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}
	if filter.Verified != nil {
		query = query.Where("is_verified = ?", *filter.Verified)
	}

	err := query.Order("created_at ASC").Order("id ASC").Find(&users).Error
	return users, err
}

// Count returns the number of users and how many of them are verified
func (r *userRepository) Count(ctx context.Context) (int64, int64, error) {
	var total, verified int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_verified = ?", true).Count(&verified).Error; err != nil {
		return 0, 0, err
	}
	return total, verified, nil
}
