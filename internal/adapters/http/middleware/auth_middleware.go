package middleware

import (
	"strings"

	"certportal/internal/core/domain"
	"certportal/internal/core/services"
	"certportal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "session_token"

// Locals keys set by AuthMiddleware
const (
	LocalAccountID = "accountID"
	LocalSessionID = "sessionID"
	LocalRole      = "role"
	LocalName      = "name"
	LocalEmail     = "email"
)

// extractToken reads the bearer token, falling back to the session cookie
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Cookies(SessionCookie)
}

// AuthMiddleware creates authentication middleware.
// The token must belong to a live, unrevoked session.
func AuthMiddleware(auth services.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return response.Unauthorized(c, "Session token required")
		}

		session, err := auth.ValidateSession(c.UserContext(), token)
		if err != nil {
			return response.FromError(c, err, "Failed to validate session")
		}

		c.Locals(LocalAccountID, session.AccountID)
		c.Locals(LocalSessionID, session.ID)
		c.Locals(LocalRole, string(session.Role))
		c.Locals(LocalName, session.Name)
		c.Locals(LocalEmail, session.Email)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == string(allowedRole) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// UserOnly allows citizens
func UserOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleUser)
}

// OfficerOrSupervisor allows officers and supervisors
func OfficerOrSupervisor() fiber.Handler {
	return RoleMiddleware(domain.RoleOfficer, domain.RoleSupervisor)
}

// SupervisorOnly allows supervisors
func SupervisorOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleSupervisor)
}

// AccountID returns the authenticated account id
func AccountID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalAccountID).(string)
	return id
}

// Role returns the authenticated role
func Role(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals(LocalRole).(string)
	return domain.Role(role)
}

// SessionID returns the authenticated session id
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}
