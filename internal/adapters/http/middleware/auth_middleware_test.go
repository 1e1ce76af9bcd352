package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"certportal/internal/core/domain"
	"certportal/internal/core/services"
	"certportal/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockAuthenticator only implements ValidateSession
type mockAuthenticator struct {
	services.Authenticator
	mock.Mock
}

func (m *mockAuthenticator) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(token)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

func newGuardedApp(auth services.Authenticator, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/private", AuthMiddleware(auth), guard, func(c *fiber.Ctx) error {
		return c.SendString(AccountID(c) + "|" + string(Role(c)) + "|" + SessionID(c))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	auth := &mockAuthenticator{}
	auth.On("ValidateSession", "good").Return(&domain.Session{
		ID:        "s1",
		AccountID: "u1",
		Role:      domain.RoleUser,
	}, nil)
	auth.On("ValidateSession", "expired").Return(nil, domain.ErrTokenExpired)
	auth.On("ValidateSession", "revoked").Return(nil, domain.ErrTokenInvalid)

	app := newGuardedApp(auth, UserOnly())

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"missing token", "", "", http.StatusUnauthorized},
		{"bearer token", "Bearer good", "", http.StatusOK},
		{"cookie token", "", "good", http.StatusOK},
		{"expired token", "Bearer expired", "", http.StatusUnauthorized},
		{"revoked token", "Bearer revoked", "", http.StatusUnauthorized},
		{"non-bearer scheme", "Basic good", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRoleGuards(t *testing.T) {
	auth := &mockAuthenticator{}
	auth.On("ValidateSession", "user").Return(&domain.Session{ID: "s1", AccountID: "u1", Role: domain.RoleUser}, nil)
	auth.On("ValidateSession", "officer").Return(&domain.Session{ID: "s2", AccountID: "OFF001", Role: domain.RoleOfficer}, nil)
	auth.On("ValidateSession", "supervisor").Return(&domain.Session{ID: "s3", AccountID: "sup", Role: domain.RoleSupervisor}, nil)

	tests := []struct {
		name  string
		guard fiber.Handler
		want  map[string]int
	}{
		{"user only", UserOnly(), map[string]int{"user": 200, "officer": 403, "supervisor": 403}},
		{"officer or supervisor", OfficerOrSupervisor(), map[string]int{"user": 403, "officer": 200, "supervisor": 200}},
		{"supervisor only", SupervisorOnly(), map[string]int{"user": 403, "officer": 403, "supervisor": 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGuardedApp(auth, tt.guard)
			for token, want := range tt.want {
				req := httptest.NewRequest(http.MethodGet, "/private", nil)
				req.Header.Set("Authorization", "Bearer "+token)
				resp, err := app.Test(req)
				require.NoError(t, err)
				assert.Equal(t, want, resp.StatusCode, token)
			}
		})
	}
}

func TestRoleMiddlewareWithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", SupervisorOnly(), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMetricsObservesRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/things/:id", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusTeapot) })

	before := testutil.CollectAndCount(metrics.HTTPDuration)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	assert.Equal(t, before+1, testutil.CollectAndCount(metrics.HTTPDuration))
}
