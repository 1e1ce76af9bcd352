package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/config"
	"certportal/internal/core/domain"
	"certportal/internal/pkg/jwt"
	"certportal/internal/pkg/metrics"
	"certportal/internal/pkg/password"

	"github.com/google/uuid"
)

const codeLength = 6

// AuthService handles registration, verification and sessions
type AuthService struct {
	repos    *repositories.Repositories
	notifier Notifier
	cfg      *config.Config
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(repos *repositories.Repositories, notifier Notifier, cfg *config.Config) *AuthService {
	return &AuthService{
		repos:    repos,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterResult carries the pending verification for a new user
type RegisterResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Code   string `json:"-"`
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return domain.NormalizeEmail(email)
}

// Register creates an unverified user and issues its verification code
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*RegisterResult, error) {
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

	code, err := password.GenerateCode(codeLength)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Phone:    strings.TrimSpace(input.Phone),
		Password: hashedPassword,
	}

	err = s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		exists, err := tx.Users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateAccount
		}

		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return tx.Codes.Upsert(ctx, s.newCode(email, code))
	})
	if err != nil {
		return nil, err
	}

	s.notifier.VerificationCode(ctx, email, name, code)
	log.Printf("✅ User registered: %s", email)

	return &RegisterResult{UserID: user.ID, Email: email, Code: code}, nil
}

// Verify redeems a verification code. It reports false on any mismatch.
func (s *AuthService) Verify(ctx context.Context, email, code string) (bool, error) {
	email = NormalizeEmail(email)
	now := s.now()
	verified := false

	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		pending, err := tx.Codes.GetByEmail(ctx, email)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if pending.IsExpired(now) || pending.Attempts >= s.cfg.Verification.MaxAttempts {
			return tx.Codes.DeleteByEmail(ctx, email)
		}

		if password.HashToken(strings.TrimSpace(code)) != pending.CodeHash {
			return tx.Codes.IncrementAttempts(ctx, pending.ID)
		}

		if err := tx.Users.MarkVerified(ctx, email); err != nil {
			return err
		}
		if err := tx.Codes.DeleteByEmail(ctx, email); err != nil {
			return err
		}
		verified = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if verified {
		log.Printf("✅ User verified: %s", email)
	}
	return verified, nil
}

// ResendCode replaces the pending code of an unverified user
func (s *AuthService) ResendCode(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)

	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user.IsVerified {
		return "", domain.NewValidationError("email", "is already verified")
	}

	code, err := password.GenerateCode(codeLength)
	if err != nil {
		return "", err
	}
	if err := s.repos.Codes.Upsert(ctx, s.newCode(email, code)); err != nil {
		return "", err
	}

	s.notifier.VerificationCode(ctx, email, user.Name, code)
	return code, nil
}

func (s *AuthService) newCode(email, code string) *models.VerificationCode {
	now := s.now()
	return &models.VerificationCode{
		Email:     email,
		CodeHash:  password.HashToken(code),
		ExpiresAt: now.Add(s.cfg.CodeTTL()),
		CreatedAt: now,
	}
}

// account is the role-independent view of a credential holder
type account struct {
	id       string
	name     string
	email    string
	hash     string
	verified bool
}

// Authenticate checks credentials for a role. It returns nil without an error
// on any mismatch so callers cannot tell which part was wrong.
func (s *AuthService) Authenticate(ctx context.Context, identifier, pw, roleName string) (*domain.Session, error) {
	role, err := domain.ParseRole(roleName)
	if err != nil {
		return nil, err
	}

	acct, err := s.lookup(ctx, strings.TrimSpace(identifier), role)
	if err != nil {
		return nil, err
	}

	if acct == nil {
		password.VerifyMissing(pw)
		metrics.Logins.WithLabelValues(string(role), "failed").Inc()
		return nil, nil
	}
	if !password.Verify(pw, acct.hash) || !acct.verified {
		metrics.Logins.WithLabelValues(string(role), "failed").Inc()
		return nil, nil
	}

	now := s.now()
	row := &models.Session{
		ID:        uuid.NewString(),
		AccountID: acct.id,
		Role:      string(role),
		Name:      acct.name,
		Email:     acct.email,
		ExpiresAt: now.Add(s.cfg.SessionTTL()),
		CreatedAt: now,
	}
	if err := s.repos.Sessions.Create(ctx, row); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateSessionToken(row.ID, acct.id, acct.name, acct.email, string(role), s.cfg.JWT.Secret, now, row.ExpiresAt)
	if err != nil {
		return nil, err
	}

	metrics.Logins.WithLabelValues(string(role), "success").Inc()

	session := toSession(row)
	session.Token = token
	return session, nil
}

// lookup finds the account for identifier within one role. Nil means no match.
func (s *AuthService) lookup(ctx context.Context, identifier string, role domain.Role) (*account, error) {
	switch role {
	case domain.RoleUser:
		user, err := s.repos.Users.GetByEmail(ctx, NormalizeEmail(identifier))
		if err != nil {
			return nilOnNotFound(err)
		}
		return &account{id: user.ID, name: user.Name, email: user.Email, hash: user.Password, verified: user.IsVerified}, nil

	case domain.RoleOfficer:
		officer, err := s.repos.Officers.GetByIdentifier(ctx, identifier)
		if errors.Is(err, domain.ErrNotFound) && strings.Contains(identifier, "@") {
			officer, err = s.repos.Officers.GetByIdentifier(ctx, NormalizeEmail(identifier))
		}
		if err != nil {
			return nilOnNotFound(err)
		}
		return &account{id: officer.ID, name: officer.Name, email: officer.Email, hash: officer.Password, verified: true}, nil

	default:
		supervisor, err := s.repos.Supervisors.GetByEmail(ctx, NormalizeEmail(identifier))
		if err != nil {
			return nilOnNotFound(err)
		}
		return &account{id: supervisor.ID, name: supervisor.Name, email: supervisor.Email, hash: supervisor.Password, verified: true}, nil
	}
}

func nilOnNotFound(err error) (*account, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return nil, err
}

// ValidateSession checks the token signature and that its session is still live
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := jwt.ValidateSessionToken(token, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	row, err := s.repos.Sessions.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if row.IsRevoked() {
		return nil, domain.ErrTokenInvalid
	}
	if row.IsExpired(s.now()) {
		return nil, domain.ErrTokenExpired
	}

	session := toSession(row)
	session.Token = token
	return session, nil
}

// EndSession revokes a session. Unknown or already revoked sessions are not an error.
func (s *AuthService) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.repos.Sessions.Revoke(ctx, sessionID, s.now())
}

func toSession(row *models.Session) *domain.Session {
	return &domain.Session{
		ID:        row.ID,
		AccountID: row.AccountID,
		Name:      row.Name,
		Email:     row.Email,
		Role:      domain.Role(row.Role),
		ExpiresAt: row.ExpiresAt,
	}
}
