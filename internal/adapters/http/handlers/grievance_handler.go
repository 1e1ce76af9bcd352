package handlers

import (
	"certportal/internal/adapters/http/middleware"
	"certportal/internal/core/services"
	"certportal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GrievanceHandler handles grievance endpoints
type GrievanceHandler struct {
	ledger services.GrievanceLedger
}

// NewGrievanceHandler creates a new grievance handler
func NewGrievanceHandler(ledger services.GrievanceLedger) *GrievanceHandler {
	return &GrievanceHandler{ledger: ledger}
}

// FileRequest represents a new grievance
type FileRequest struct {
	Description string `json:"description"`
}

// ResolveRequest represents a supervisor response
type ResolveRequest struct {
	Response string `json:"response"`
}

// File handles filing a grievance
// @Summary File grievance
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FileRequest true "Grievance"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /grievances [post]
func (h *GrievanceHandler) File(c *fiber.Ctx) error {
	var req FileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	grievance, err := h.ledger.File(c.UserContext(), middleware.AccountID(c), req.Description)
	if err != nil {
		return response.FromError(c, err, "Failed to file grievance")
	}

	return response.Created(c, "Grievance filed successfully", grievance)
}

// ListMine handles listing the caller's grievances
// @Summary List my grievances
// @Tags Grievances
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /grievances/mine [get]
func (h *GrievanceHandler) ListMine(c *fiber.Ctx) error {
	grievances, err := h.ledger.ListForUser(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return response.FromError(c, err, "Failed to list grievances")
	}
	return response.Success(c, "Grievances retrieved successfully", paged(c, grievances))
}

// ListAll handles listing every grievance
// @Summary List all grievances
// @Tags Grievances
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending or resolved"
// @Param search query string false "Id or description fragment"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /grievances [get]
func (h *GrievanceHandler) ListAll(c *fiber.Ctx) error {
	grievances, err := h.ledger.ListAll(c.UserContext(), services.ListGrievancesInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		return response.FromError(c, err, "Failed to list grievances")
	}
	return response.Success(c, "Grievances retrieved successfully", paged(c, grievances))
}

// Resolve handles a supervisor response
// @Summary Resolve grievance
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Grievance ID"
// @Param body body ResolveRequest true "Response"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /grievances/{id}/resolve [post]
func (h *GrievanceHandler) Resolve(c *fiber.Ctx) error {
	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	grievance, err := h.ledger.Resolve(c.UserContext(), c.Params("id"), req.Response, middleware.AccountID(c))
	if err != nil {
		return response.FromError(c, err, "Failed to resolve grievance")
	}

	return response.Success(c, "Grievance resolved", grievance)
}
