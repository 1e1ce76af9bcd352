package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"certportal/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"validation", domain.NewValidationError("email", "is required"), http.StatusBadRequest, ""},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, ""},
		{"not found", domain.ErrRequestNotFound, http.StatusNotFound, ""},
		{"duplicate", domain.ErrDuplicateAccount, http.StatusConflict, "Account already exists"},
		{"transition", &domain.TransitionError{From: "approved", To: "rejected"}, http.StatusConflict, ""},
		{
			"payment failure",
			fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, fmt.Errorf("%w: gateway down", domain.ErrPaymentFailed)),
			http.StatusBadGateway, "",
		},
		{
			"storage failure during submission",
			fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, errors.New("disk full")),
			http.StatusInternalServerError, "fallback",
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return FromError(c, tt.err, "fallback")
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			}
		})
	}
}
