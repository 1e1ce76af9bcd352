package services

import (
	"context"
	"log"
	"strings"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/core/domain"
	"certportal/internal/pkg/password"
)

// AccountService handles officer and user administration
type AccountService struct {
	repos *repositories.Repositories
	now   func() time.Time
}

// NewAccountService creates a new account service
func NewAccountService(repos *repositories.Repositories) *AccountService {
	return &AccountService{repos: repos, now: time.Now}
}

// CreateOfficerInput represents create officer input
type CreateOfficerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateOfficerInput represents update officer input. Nil fields are left unchanged.
type UpdateOfficerInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Search string
	// Verified is all, verified or unverified
	Verified string
}

// UserDetails is a user with everything they own
type UserDetails struct {
	*models.User
	Requests   []*models.CertificateRequest `json:"requests"`
	Grievances []*models.Grievance          `json:"grievances"`
}

// ============================================================
// Officers
// ============================================================

// CreateOfficer creates an officer with the next OFF### code
func (s *AccountService) CreateOfficer(ctx context.Context, supervisorID string, input *CreateOfficerInput) (*models.Officer, error) {
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)

	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "must be a valid email address")
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.NewValidationError("password", "must be at least 8 characters")
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var officer *models.Officer
	err = s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		exists, err := tx.Officers.ExistsByEmail(ctx, email, "")
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateAccount
		}

		seq, err := tx.Officers.NextSeq(ctx)
		if err != nil {
			return err
		}

		officer = &models.Officer{
			ID:        domain.OfficerCode(seq),
			Seq:       seq,
			Name:      name,
			Email:     email,
			Password:  hashedPassword,
			CreatedBy: supervisorID,
		}
		return tx.Officers.Create(ctx, officer)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Officer created: %s (%s)", officer.ID, officer.Email)
	return officer, nil
}

func (s *AccountService) GetOfficer(ctx context.Context, id string) (*models.Officer, error) {
	return s.repos.Officers.GetByID(ctx, id)
}

// ListOfficers lists officers by code, matching search on name, code or email
func (s *AccountService) ListOfficers(ctx context.Context, search string) ([]*models.Officer, error) {
	return s.repos.Officers.List(ctx, search)
}

// UpdateOfficer changes an officer's name, email or password
func (s *AccountService) UpdateOfficer(ctx context.Context, id string, input *UpdateOfficerInput) (*models.Officer, error) {
	officer, err := s.repos.Officers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "is required")
		}
		officer.Name = name
	}

	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, domain.NewValidationError("email", "must be a valid email address")
		}
		exists, err := s.repos.Officers.ExistsByEmail(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateAccount
		}
		officer.Email = email
	}

	if input.Password != nil {
		if !password.ValidatePassword(*input.Password) {
			return nil, domain.NewValidationError("password", "must be at least 8 characters")
		}
		hashedPassword, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		officer.Password = hashedPassword
	}

	if err := s.repos.Officers.Update(ctx, officer); err != nil {
		return nil, err
	}
	return officer, nil
}

// DeleteOfficer removes an officer and revokes their sessions. Decided
// requests keep the officer code as a plain reference.
func (s *AccountService) DeleteOfficer(ctx context.Context, id string) error {
	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		if err := tx.Officers.Delete(ctx, id); err != nil {
			return err
		}
		return tx.Sessions.RevokeAllByAccount(ctx, id, s.now())
	})
	if err != nil {
		return err
	}

	log.Printf("🗑️ Officer deleted: %s", id)
	return nil
}

// ============================================================
// Users
// ============================================================

// ListUsers lists citizens in registration order
func (s *AccountService) ListUsers(ctx context.Context, input ListUsersInput) ([]*models.User, error) {
	filter := repositories.UserFilter{Search: input.Search}

	switch strings.ToLower(strings.TrimSpace(input.Verified)) {
	case "", "all":
	case "verified":
		v := true
		filter.Verified = &v
	case "unverified":
		v := false
		filter.Verified = &v
	default:
		return nil, domain.NewValidationError("verified", "must be all, verified or unverified")
	}

	return s.repos.Users.List(ctx, filter)
}

// GetUser gets a citizen with their requests and grievances
func (s *AccountService) GetUser(ctx context.Context, id string) (*UserDetails, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	requests, err := s.repos.Requests.List(ctx, repositories.RequestFilter{UserID: id})
	if err != nil {
		return nil, err
	}
	grievances, err := s.repos.Grievances.List(ctx, repositories.GrievanceFilter{UserID: id})
	if err != nil {
		return nil, err
	}

	return &UserDetails{User: user, Requests: requests, Grievances: grievances}, nil
}

// DeleteUser removes a citizen and everything they own in one transaction
func (s *AccountService) DeleteUser(ctx context.Context, id string) error {
	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		user, err := tx.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		requestIDs, err := tx.Requests.IDsByUser(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Documents.DeleteByRequestIDs(ctx, requestIDs); err != nil {
			return err
		}
		if err := tx.Certificates.DeleteByRequestIDs(ctx, requestIDs); err != nil {
			return err
		}
		if err := tx.Payments.DeleteByRequestIDs(ctx, requestIDs); err != nil {
			return err
		}
		if err := tx.Requests.DeleteByIDs(ctx, requestIDs); err != nil {
			return err
		}
		if err := tx.Grievances.DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := tx.Sessions.DeleteByAccount(ctx, id); err != nil {
			return err
		}
		if err := tx.Codes.DeleteByEmail(ctx, user.Email); err != nil {
			return err
		}
		return tx.Users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("🗑️ User deleted with all records: %s", id)
	return nil
}
