package services

import (
	"errors"
	"testing"
	"time"

	"certportal/internal/core/domain"

	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	suite.Suite
	f *fixture
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.f = newFixture(s.T(), nil)
}

func (s *AuthServiceSuite) register(email string) *RegisterResult {
	result, err := s.f.auth.Register(s.f.ctx, &RegisterInput{
		Name:     "Alice",
		Email:    email,
		Password: "password123",
	})
	s.Require().NoError(err)
	return result
}

// =============================================================================
// Registration and verification
// =============================================================================

func (s *AuthServiceSuite) TestRegisterThenVerifyThenLogin() {
	result := s.register("alice@example.com")
	s.Len(result.Code, 6)
	s.Equal(result.Code, s.f.notifier.codes["alice@example.com"])

	session, err := s.f.auth.Authenticate(s.f.ctx, "alice@example.com", "password123", "user")
	s.Require().NoError(err)
	s.Nil(session, "unverified users cannot log in")

	ok, err := s.f.auth.Verify(s.f.ctx, "alice@example.com", result.Code)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.f.auth.Verify(s.f.ctx, "alice@example.com", result.Code)
	s.Require().NoError(err)
	s.False(ok, "a code is redeemed once")

	session, err = s.f.auth.Authenticate(s.f.ctx, "alice@example.com", "password123", "user")
	s.Require().NoError(err)
	s.Require().NotNil(session)
	s.Equal(domain.RoleUser, session.Role)
	s.Equal(result.UserID, session.AccountID)
	s.NotEmpty(session.Token)
}

func (s *AuthServiceSuite) TestRegisterValidation() {
	cases := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"missing name", RegisterInput{Email: "a@example.com", Password: "password123"}, "name"},
		{"bad email", RegisterInput{Name: "A", Email: "nope", Password: "password123"}, "email"},
		{"short password", RegisterInput{Name: "A", Email: "a@example.com", Password: "short"}, "password"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			input := tc.input
			_, err := s.f.auth.Register(s.f.ctx, &input)
			var ve *domain.ValidationError
			s.Require().True(errors.As(err, &ve))
			s.Equal(tc.field, ve.Field)
		})
	}
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmailIgnoresCase() {
	s.register("alice@example.com")

	_, err := s.f.auth.Register(s.f.ctx, &RegisterInput{
		Name:     "Other",
		Email:    "  ALICE@example.com ",
		Password: "password123",
	})
	s.ErrorIs(err, domain.ErrDuplicateAccount)
}

func (s *AuthServiceSuite) TestVerifyMismatchLeavesUserUnverified() {
	result := s.register("alice@example.com")
	wrong := "000000"
	if result.Code == wrong {
		wrong = "111111"
	}

	ok, err := s.f.auth.Verify(s.f.ctx, "alice@example.com", wrong)
	s.Require().NoError(err)
	s.False(ok)

	user, err := s.f.repos.Users.GetByEmail(s.f.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.False(user.IsVerified)

	ok, err = s.f.auth.Verify(s.f.ctx, "alice@example.com", result.Code)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *AuthServiceSuite) TestVerifyLocksAfterMaxAttempts() {
	result := s.register("alice@example.com")
	wrong := "000000"
	if result.Code == wrong {
		wrong = "111111"
	}

	for i := 0; i < s.f.cfg.Verification.MaxAttempts; i++ {
		ok, err := s.f.auth.Verify(s.f.ctx, "alice@example.com", wrong)
		s.Require().NoError(err)
		s.False(ok)
	}

	ok, err := s.f.auth.Verify(s.f.ctx, "alice@example.com", result.Code)
	s.Require().NoError(err)
	s.False(ok, "the right code no longer works after too many guesses")
}

func (s *AuthServiceSuite) TestVerifyExpiredCode() {
	result := s.register("alice@example.com")

	s.f.auth.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	ok, err := s.f.auth.Verify(s.f.ctx, "alice@example.com", result.Code)
	s.Require().NoError(err)
	s.False(ok)

	_, err = s.f.repos.Codes.GetByEmail(s.f.ctx, "alice@example.com")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *AuthServiceSuite) TestVerifyUnknownEmail() {
	ok, err := s.f.auth.Verify(s.f.ctx, "ghost@example.com", "123456")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *AuthServiceSuite) TestResendCodeReplacesPendingCode() {
	first := s.register("alice@example.com")

	second, err := s.f.auth.ResendCode(s.f.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Len(second, 6)

	if first.Code != second {
		ok, err := s.f.auth.Verify(s.f.ctx, "alice@example.com", first.Code)
		s.Require().NoError(err)
		s.False(ok)
	}

	ok, err := s.f.auth.Verify(s.f.ctx, "alice@example.com", second)
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.f.auth.ResendCode(s.f.ctx, "alice@example.com")
	s.ErrorIs(err, domain.ErrValidation)
}

// =============================================================================
// Authentication
// =============================================================================

func (s *AuthServiceSuite) TestAuthenticateByRole() {
	s.Run("officer by code", func() {
		session, err := s.f.auth.Authenticate(s.f.ctx, "OFF001", "officer123", "officer")
		s.Require().NoError(err)
		s.Require().NotNil(session)
		s.Equal("OFF001", session.AccountID)
		s.Equal(domain.RoleOfficer, session.Role)
	})

	s.Run("officer by email", func() {
		session, err := s.f.auth.Authenticate(s.f.ctx, "Officer@gov.in", "officer123", "officer")
		s.Require().NoError(err)
		s.Require().NotNil(session)
		s.Equal("OFF001", session.AccountID)
	})

	s.Run("supervisor by email", func() {
		session, err := s.f.auth.Authenticate(s.f.ctx, "supervisor@gov.in", "supervisor123", "supervisor")
		s.Require().NoError(err)
		s.Require().NotNil(session)
		s.Equal(domain.RoleSupervisor, session.Role)
	})

	s.Run("role mismatch", func() {
		session, err := s.f.auth.Authenticate(s.f.ctx, "supervisor@gov.in", "supervisor123", "officer")
		s.Require().NoError(err)
		s.Nil(session)
	})

	s.Run("wrong password", func() {
		session, err := s.f.auth.Authenticate(s.f.ctx, "OFF001", "wrong-password", "officer")
		s.Require().NoError(err)
		s.Nil(session)
	})

	s.Run("unknown account", func() {
		session, err := s.f.auth.Authenticate(s.f.ctx, "ghost@example.com", "password123", "user")
		s.Require().NoError(err)
		s.Nil(session)
	})

	s.Run("unknown role", func() {
		_, err := s.f.auth.Authenticate(s.f.ctx, "OFF001", "officer123", "admin")
		s.ErrorIs(err, domain.ErrValidation)
	})
}

// =============================================================================
// Sessions
// =============================================================================

func (s *AuthServiceSuite) TestSessionLifecycle() {
	session, err := s.f.auth.Authenticate(s.f.ctx, "OFF001", "officer123", "officer")
	s.Require().NoError(err)
	s.Require().NotNil(session)

	validated, err := s.f.auth.ValidateSession(s.f.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(session.ID, validated.ID)
	s.Equal("OFF001", validated.AccountID)

	s.Require().NoError(s.f.auth.EndSession(s.f.ctx, session.ID))
	s.Require().NoError(s.f.auth.EndSession(s.f.ctx, session.ID), "ending twice is fine")
	s.Require().NoError(s.f.auth.EndSession(s.f.ctx, "unknown"))

	_, err = s.f.auth.ValidateSession(s.f.ctx, session.Token)
	s.ErrorIs(err, domain.ErrTokenInvalid)
}

func (s *AuthServiceSuite) TestValidateSessionRejectsForeignTokens() {
	_, err := s.f.auth.ValidateSession(s.f.ctx, "not-a-token")
	s.ErrorIs(err, domain.ErrTokenInvalid)

	session, err := s.f.auth.Authenticate(s.f.ctx, "OFF001", "officer123", "officer")
	s.Require().NoError(err)
	s.Require().NotNil(session)

	s.f.cfg.JWT.Secret = "rotated"
	_, err = s.f.auth.ValidateSession(s.f.ctx, session.Token)
	s.ErrorIs(err, domain.ErrTokenInvalid)
}
