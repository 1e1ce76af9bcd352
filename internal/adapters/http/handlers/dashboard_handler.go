package handlers

import (
	"certportal/internal/adapters/http/middleware"
	"certportal/internal/core/services"
	"certportal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboards and reports
type DashboardHandler struct {
	reportService *services.ReportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reportService *services.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// UserDashboard returns the citizen dashboard
// @Summary User dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/user [get]
func (h *DashboardHandler) UserDashboard(c *fiber.Ctx) error {
	data, err := h.reportService.UserDashboard(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return response.FromError(c, err, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// OfficerDashboard returns the officer dashboard
// @Summary Officer dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/officer [get]
func (h *DashboardHandler) OfficerDashboard(c *fiber.Ctx) error {
	data, err := h.reportService.OfficerDashboard(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return response.FromError(c, err, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// SupervisorDashboard returns the supervisor overview
// @Summary Supervisor dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/supervisor [get]
func (h *DashboardHandler) SupervisorDashboard(c *fiber.Ctx) error {
	data, err := h.reportService.SupervisorDashboard(c.UserContext())
	if err != nil {
		return response.FromError(c, err, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Report generates the system report
// @Summary System report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param period query string false "week, month, year or all" default(all)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports [get]
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	generatedBy, _ := c.Locals(middleware.LocalName).(string)

	report, err := h.reportService.Generate(c.UserContext(), c.Query("period"), generatedBy)
	if err != nil {
		return response.FromError(c, err, "Failed to generate report")
	}
	return response.Success(c, "Report generated successfully", report)
}
