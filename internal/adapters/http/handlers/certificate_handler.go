package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strings"

	"certportal/internal/adapters/http/middleware"
	"certportal/internal/core/domain"
	"certportal/internal/core/services"
	"certportal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CertificateHandler handles certificate request endpoints
type CertificateHandler struct {
	ledger services.RequestLedger
}

// NewCertificateHandler creates a new certificate handler
func NewCertificateHandler(ledger services.RequestLedger) *CertificateHandler {
	return &CertificateHandler{ledger: ledger}
}

// DecideRequest represents an officer decision
type DecideRequest struct {
	Decision string `json:"decision"`
	Comment  string `json:"comment"`
}

// Submit handles a new certificate application
// @Summary Submit certificate request
// @Description Apply for a birth or death certificate. Accepts JSON, or multipart with a "payload" JSON field and "documents" files.
// @Tags Requests
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitInput true "Application"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /requests [post]
func (h *CertificateHandler) Submit(c *fiber.Ctx) error {
	input, err := parseSubmission(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	request, err := h.ledger.Submit(c.UserContext(), middleware.AccountID(c), input)
	if err != nil {
		return response.FromError(c, err, "Failed to submit request")
	}

	return response.Created(c, "Request submitted successfully", request)
}

// parseSubmission reads either a JSON body or a multipart form
func parseSubmission(c *fiber.Ctx) (*services.SubmitInput, error) {
	var input services.SubmitInput

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&input); err != nil {
			return nil, domain.NewValidationError("body", "invalid request body")
		}
		return &input, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, domain.NewValidationError("body", "invalid multipart form")
	}
	if payload := form.Value["payload"]; len(payload) > 0 {
		if err := json.Unmarshal([]byte(payload[0]), &input); err != nil {
			return nil, domain.NewValidationError("payload", "invalid JSON")
		}
	}
	input.Files = append(input.Files, fileMetas(form.File["documents"])...)
	return &input, nil
}

// fileMetas keeps the upload metadata only
func fileMetas(headers []*multipart.FileHeader) []services.FileMeta {
	metas := make([]services.FileMeta, 0, len(headers))
	for _, fh := range headers {
		metas = append(metas, services.FileMeta{
			Name: fh.Filename,
			Type: fh.Header.Get(fiber.HeaderContentType),
			Size: fh.Size,
		})
	}
	return metas
}

// ListMine handles listing the caller's requests
// @Summary List my requests
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /requests/mine [get]
func (h *CertificateHandler) ListMine(c *fiber.Ctx) error {
	requests, err := h.ledger.ListForUser(c.UserContext(), middleware.AccountID(c), c.Query("status"))
	if err != nil {
		return response.FromError(c, err, "Failed to list requests")
	}
	return response.Success(c, "Requests retrieved successfully", paged(c, requests))
}

// ListIssued handles listing the caller's approved certificates
// @Summary List my certificates
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /certificates [get]
func (h *CertificateHandler) ListIssued(c *fiber.Ctx) error {
	requests, err := h.ledger.ListIssued(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return response.FromError(c, err, "Failed to list certificates")
	}
	return response.Success(c, "Certificates retrieved successfully", paged(c, requests))
}

// ListAll handles the officer request queue
// @Summary List all requests
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param type query string false "birth or death"
// @Param search query string false "Request id fragment"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /requests [get]
func (h *CertificateHandler) ListAll(c *fiber.Ctx) error {
	requests, err := h.ledger.ListAll(c.UserContext(), services.ListRequestsInput{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Search: c.Query("search"),
	})
	if err != nil {
		return response.FromError(c, err, "Failed to list requests")
	}
	return response.Success(c, "Requests retrieved successfully", paged(c, requests))
}

// Get handles getting one request. Users only see their own.
// @Summary Get request
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id} [get]
func (h *CertificateHandler) Get(c *fiber.Ctx) error {
	details, err := h.ledger.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err, "Failed to get request")
	}

	// Hide other citizens' requests behind a 404
	if middleware.Role(c) == domain.RoleUser && details.UserID != middleware.AccountID(c) {
		return response.FromError(c, domain.ErrRequestNotFound, "")
	}

	return response.Success(c, "Request retrieved successfully", details)
}

// Decide handles an officer decision
// @Summary Approve or reject a request
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body DecideRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /requests/{id}/decide [post]
func (h *CertificateHandler) Decide(c *fiber.Ctx) error {
	var req DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.ledger.Decide(c.UserContext(), c.Params("id"), req.Decision, req.Comment, middleware.AccountID(c))
	if err != nil {
		return response.FromError(c, err, "Failed to decide request")
	}

	return response.Success(c, "Request "+request.Status, request)
}
