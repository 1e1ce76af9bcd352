package handlers

import (
	"certportal/internal/adapters/http/middleware"
	"certportal/internal/core/services"
	"certportal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles supervisor account management: officers and citizens
type UserHandler struct {
	accountService *services.AccountService
}

// NewUserHandler creates a new user handler
func NewUserHandler(accountService *services.AccountService) *UserHandler {
	return &UserHandler{
		accountService: accountService,
	}
}

// ListOfficers handles listing officers
// @Summary List officers
// @Tags Officers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name, code or email fragment"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /officers [get]
func (h *UserHandler) ListOfficers(c *fiber.Ctx) error {
	officers, err := h.accountService.ListOfficers(c.UserContext(), c.Query("search"))
	if err != nil {
		return response.FromError(c, err, "Failed to list officers")
	}
	return response.Success(c, "Officers retrieved successfully", paged(c, officers))
}

// GetOfficer handles getting one officer
// @Summary Get officer
// @Tags Officers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Officer code"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /officers/{id} [get]
func (h *UserHandler) GetOfficer(c *fiber.Ctx) error {
	officer, err := h.accountService.GetOfficer(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err, "Failed to get officer")
	}
	return response.Success(c, "Officer retrieved successfully", officer)
}

// CreateOfficer handles creating an officer
// @Summary Create officer
// @Tags Officers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateOfficerInput true "Officer"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /officers [post]
func (h *UserHandler) CreateOfficer(c *fiber.Ctx) error {
	var input services.CreateOfficerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	officer, err := h.accountService.CreateOfficer(c.UserContext(), middleware.AccountID(c), &input)
	if err != nil {
		return response.FromError(c, err, "Failed to create officer")
	}
	return response.Created(c, "Officer created successfully", officer)
}

// UpdateOfficer handles updating an officer
// @Summary Update officer
// @Tags Officers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Officer code"
// @Param body body services.UpdateOfficerInput true "Changes"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /officers/{id} [put]
func (h *UserHandler) UpdateOfficer(c *fiber.Ctx) error {
	var input services.UpdateOfficerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	officer, err := h.accountService.UpdateOfficer(c.UserContext(), c.Params("id"), &input)
	if err != nil {
		return response.FromError(c, err, "Failed to update officer")
	}
	return response.Success(c, "Officer updated successfully", officer)
}

// DeleteOfficer handles deleting an officer
// @Summary Delete officer
// @Tags Officers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Officer code"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /officers/{id} [delete]
func (h *UserHandler) DeleteOfficer(c *fiber.Ctx) error {
	if err := h.accountService.DeleteOfficer(c.UserContext(), c.Params("id")); err != nil {
		return response.FromError(c, err, "Failed to delete officer")
	}
	return response.Success(c, "Officer deleted successfully", nil)
}

// ListUsers handles listing citizens
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name, email or phone fragment"
// @Param verified query string false "all, verified or unverified"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.accountService.ListUsers(c.UserContext(), services.ListUsersInput{
		Search:   c.Query("search"),
		Verified: c.Query("verified"),
	})
	if err != nil {
		return response.FromError(c, err, "Failed to list users")
	}
	return response.Success(c, "Users retrieved successfully", paged(c, users))
}

// GetUser handles getting a citizen with their requests and grievances
// @Summary Get user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.accountService.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err, "Failed to get user")
	}
	return response.Success(c, "User retrieved successfully", user)
}

// DeleteUser handles deleting a citizen and everything they own
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.accountService.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return response.FromError(c, err, "Failed to delete user")
	}
	return response.Success(c, "User deleted successfully", nil)
}
