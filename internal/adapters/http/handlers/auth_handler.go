package handlers

import (
	"strings"
	"time"

	"certportal/internal/adapters/http/middleware"
	"certportal/internal/config"
	"certportal/internal/core/domain"
	"certportal/internal/core/services"
	"certportal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.Authenticator
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.Authenticator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// VerifyRequest represents the verification code submission
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResendRequest asks for a fresh verification code
type ResendRequest struct {
	Email string `json:"email"`
}

// LoginRequest represents login request body.
// Identifier is an email, or an officer code for officers.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

// Register handles citizen registration
// @Summary Register new user
// @Description Register a citizen account and send a verification code
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Register(c.UserContext(), &services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return response.FromError(c, err, "Failed to register user")
	}

	data := fiber.Map{
		"user_id": result.UserID,
		"email":   result.Email,
	}
	// Dev mode has no mail delivery, so the code is echoed back
	if h.cfg.IsDev() {
		data["verification_code"] = result.Code
	}

	return response.Created(c, "Registered. Check your email for the verification code", data)
}

// Verify handles email verification
// @Summary Verify email
// @Description Redeem the verification code sent at registration
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body VerifyRequest true "Email and code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Code) == "" {
		return response.BadRequest(c, "Email and code are required")
	}

	ok, err := h.authService.Verify(c.UserContext(), req.Email, req.Code)
	if err != nil {
		return response.FromError(c, err, "Failed to verify email")
	}
	if !ok {
		return response.BadRequest(c, "Invalid or expired verification code")
	}

	return response.Success(c, "Email verified successfully", nil)
}

// ResendCode issues a new verification code
// @Summary Resend verification code
// @Description Replace the pending verification code of an unverified user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ResendRequest true "Email"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/resend-code [post]
func (h *AuthHandler) ResendCode(c *fiber.Ctx) error {
	var req ResendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" {
		return response.BadRequest(c, "Email is required")
	}

	code, err := h.authService.ResendCode(c.UserContext(), req.Email)
	if err != nil {
		return response.FromError(c, err, "Failed to resend code")
	}

	var data fiber.Map
	if h.cfg.IsDev() {
		data = fiber.Map{"verification_code": code}
	}
	return response.Success(c, "Verification code sent", data)
}

// Login handles login for every role
// @Summary Login
// @Description Authenticate as user, officer or supervisor and open a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Identifier) == "" || req.Password == "" {
		return response.BadRequest(c, "Identifier and password are required")
	}
	if req.Role == "" {
		req.Role = string(domain.RoleUser)
	}

	session, err := h.authService.Authenticate(c.UserContext(), req.Identifier, req.Password, req.Role)
	if err != nil {
		return response.FromError(c, err, "Failed to login")
	}
	if session == nil {
		return response.Unauthorized(c, "Invalid credentials")
	}

	h.setSessionCookie(c, session.Token, session.ExpiresAt)

	return response.Success(c, "Login successful", fiber.Map{
		"token":   session.Token,
		"account": session,
	})
}

// Logout handles logout
// @Summary Logout
// @Description Revoke the current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.EndSession(c.UserContext(), middleware.SessionID(c)); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	h.clearSessionCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current account
// @Summary Get current account
// @Description Get the authenticated account and its role
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return response.Success(c, "Account retrieved successfully", fiber.Map{
		"id":    middleware.AccountID(c),
		"name":  c.Locals(middleware.LocalName),
		"email": c.Locals(middleware.LocalEmail),
		"role":  middleware.Role(c),
	})
}

// setSessionCookie sets the session cookie for browser clients
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie clears the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
