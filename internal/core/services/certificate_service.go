package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/core/domain"
	"certportal/internal/pkg/metrics"

	"github.com/google/uuid"
)

// MaxDocumentSize is the largest accepted upload (5 MiB)
const MaxDocumentSize int64 = 5 << 20

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

var aadhaarPattern = regexp.MustCompile(`^[0-9]{12}$`)

const dateLayout = "2006-01-02"

// CertificateService is the certificate request ledger
type CertificateService struct {
	repos    *repositories.Repositories
	payments *PaymentService
	notifier Notifier
	now      func() time.Time
}

// NewCertificateService creates a new certificate service
func NewCertificateService(repos *repositories.Repositories, payments *PaymentService, notifier Notifier) *CertificateService {
	return &CertificateService{
		repos:    repos,
		payments: payments,
		notifier: notifier,
		now:      time.Now,
	}
}

// BirthDetails is the birth certificate payload
type BirthDetails struct {
	ChildName     string `json:"child_name"`
	DateOfBirth   string `json:"dob"`
	Gender        string `json:"gender"`
	PlaceOfBirth  string `json:"place_of_birth"`
	FatherName    string `json:"father_name"`
	MotherName    string `json:"mother_name"`
	ParentAadhaar string `json:"parent_aadhaar"`
	Address       string `json:"address"`
}

// DeathDetails is the death certificate payload
type DeathDetails struct {
	DeceasedName    string `json:"deceased_name"`
	DateOfDeath     string `json:"dod"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	CauseOfDeath    string `json:"cause_of_death"`
	PlaceOfDeath    string `json:"place_of_death"`
	RelativeName    string `json:"relative_name"`
	Relation        string `json:"relation"`
	RelativeAadhaar string `json:"relative_aadhaar"`
}

// FileMeta describes one uploaded file. Only metadata is kept.
type FileMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// SubmitInput represents a certificate application
type SubmitInput struct {
	Type  string        `json:"type"`
	Birth *BirthDetails `json:"birth,omitempty"`
	Death *DeathDetails `json:"death,omitempty"`
	Files []FileMeta    `json:"files"`
}

// ListRequestsInput represents the administrative request filter
type ListRequestsInput struct {
	Status string
	Type   string
	Search string
}

// RequestDetails is a request with its payload and payment
type RequestDetails struct {
	*models.CertificateRequest
	Birth   *models.BirthCertificate `json:"birth,omitempty"`
	Death   *models.DeathCertificate `json:"death,omitempty"`
	Payment *models.Payment          `json:"payment,omitempty"`
}

// Submit stores a new pending request with its documents, payload and fee
// payment in one transaction. Any failure after validation leaves nothing behind.
func (s *CertificateService) Submit(ctx context.Context, userID string, input *SubmitInput) (*models.CertificateRequest, error) {
	certType, err := validateSubmission(input)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	request := &models.CertificateRequest{
		ID:             id.String(),
		UserID:         userID,
		Type:           string(certType),
		Status:         string(domain.StatusPending),
		SubmissionDate: s.now(),
	}

	docs := make([]*models.Document, 0, len(input.Files))
	for i, f := range input.Files {
		docs = append(docs, &models.Document{
			ID:        uuid.NewString(),
			RequestID: request.ID,
			Position:  i,
			Name:      strings.TrimSpace(f.Name),
			MimeType:  f.Type,
			Size:      f.Size,
			Verified:  false,
		})
	}

	err = s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		if err := tx.Requests.Create(ctx, request); err != nil {
			return err
		}
		if err := tx.Documents.CreateBatch(ctx, docs); err != nil {
			return err
		}
		if err := s.storePayload(ctx, tx, request.ID, certType, input); err != nil {
			return err
		}
		_, err := s.payments.Record(ctx, tx.Payments, request.ID)
		return err
	})
	if err != nil {
		metrics.SubmissionFailures.Inc()
		log.Printf("❌ Submission failed for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
	}

	request.Documents = make([]models.Document, len(docs))
	for i, d := range docs {
		request.Documents[i] = *d
	}

	metrics.RequestsSubmitted.WithLabelValues(request.Type).Inc()
	log.Printf("✅ Certificate request submitted: %s (%s)", request.ID, request.Type)

	return request, nil
}

func (s *CertificateService) storePayload(ctx context.Context, tx *repositories.Repositories, requestID string, certType domain.CertificateType, input *SubmitInput) error {
	if certType == domain.CertificateBirth {
		b := input.Birth
		return tx.Certificates.CreateBirth(ctx, &models.BirthCertificate{
			RequestID:     requestID,
			ChildName:     strings.TrimSpace(b.ChildName),
			DateOfBirth:   b.DateOfBirth,
			Gender:        b.Gender,
			PlaceOfBirth:  strings.TrimSpace(b.PlaceOfBirth),
			FatherName:    b.FatherName,
			MotherName:    b.MotherName,
			ParentAadhaar: b.ParentAadhaar,
			Address:       b.Address,
		})
	}

	d := input.Death
	return tx.Certificates.CreateDeath(ctx, &models.DeathCertificate{
		RequestID:       requestID,
		DeceasedName:    strings.TrimSpace(d.DeceasedName),
		DateOfDeath:     d.DateOfDeath,
		Age:             d.Age,
		Gender:          d.Gender,
		CauseOfDeath:    d.CauseOfDeath,
		PlaceOfDeath:    strings.TrimSpace(d.PlaceOfDeath),
		RelativeName:    d.RelativeName,
		Relation:        d.Relation,
		RelativeAadhaar: d.RelativeAadhaar,
	})
}

// validateSubmission checks the type, its matching payload and the files
func validateSubmission(input *SubmitInput) (domain.CertificateType, error) {
	certType, err := domain.ParseCertificateType(input.Type)
	if err != nil {
		return "", err
	}

	switch certType {
	case domain.CertificateBirth:
		if input.Birth == nil || input.Death != nil {
			return "", domain.NewValidationError("birth", "birth details are required for a birth certificate")
		}
		if err := validateBirth(input.Birth); err != nil {
			return "", err
		}
	case domain.CertificateDeath:
		if input.Death == nil || input.Birth != nil {
			return "", domain.NewValidationError("death", "death details are required for a death certificate")
		}
		if err := validateDeath(input.Death); err != nil {
			return "", err
		}
	}

	if len(input.Files) == 0 {
		return "", domain.NewValidationError("files", "at least one document is required")
	}
	for i, f := range input.Files {
		field := fmt.Sprintf("files[%d]", i)
		if strings.TrimSpace(f.Name) == "" {
			return "", domain.NewValidationError(field, "name is required")
		}
		if f.Size <= 0 || f.Size > MaxDocumentSize {
			return "", domain.NewValidationError(field, "size must be between 1 byte and 5 MiB")
		}
		if !allowedMimeTypes[f.Type] {
			return "", domain.NewValidationError(field, "type must be application/pdf, image/jpeg or image/png")
		}
	}

	return certType, nil
}

func validateBirth(b *BirthDetails) error {
	if strings.TrimSpace(b.ChildName) == "" {
		return domain.NewValidationError("child_name", "is required")
	}
	if _, err := time.Parse(dateLayout, b.DateOfBirth); err != nil {
		return domain.NewValidationError("dob", "must be a YYYY-MM-DD date")
	}
	if strings.TrimSpace(b.PlaceOfBirth) == "" {
		return domain.NewValidationError("place_of_birth", "is required")
	}
	if b.ParentAadhaar != "" && !aadhaarPattern.MatchString(b.ParentAadhaar) {
		return domain.NewValidationError("parent_aadhaar", "must be 12 digits")
	}
	return nil
}

func validateDeath(d *DeathDetails) error {
	if strings.TrimSpace(d.DeceasedName) == "" {
		return domain.NewValidationError("deceased_name", "is required")
	}
	if _, err := time.Parse(dateLayout, d.DateOfDeath); err != nil {
		return domain.NewValidationError("dod", "must be a YYYY-MM-DD date")
	}
	if d.Age < 0 {
		return domain.NewValidationError("age", "must not be negative")
	}
	if strings.TrimSpace(d.PlaceOfDeath) == "" {
		return domain.NewValidationError("place_of_death", "is required")
	}
	if d.RelativeAadhaar != "" && !aadhaarPattern.MatchString(d.RelativeAadhaar) {
		return domain.NewValidationError("relative_aadhaar", "must be 12 digits")
	}
	return nil
}

// ListForUser lists a user's requests in submission order, optionally by status
func (s *CertificateService) ListForUser(ctx context.Context, userID, status string) ([]*models.CertificateRequest, error) {
	filter := repositories.RequestFilter{UserID: userID}
	if status != "" {
		st, err := domain.ParseRequestStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(st)
	}
	return s.repos.Requests.List(ctx, filter)
}

// ListAll lists every request in submission order
func (s *CertificateService) ListAll(ctx context.Context, input ListRequestsInput) ([]*models.CertificateRequest, error) {
	filter := repositories.RequestFilter{Search: input.Search}
	if input.Status != "" {
		st, err := domain.ParseRequestStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(st)
	}
	if input.Type != "" {
		t, err := domain.ParseCertificateType(input.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = string(t)
	}
	return s.repos.Requests.List(ctx, filter)
}

// ListIssued lists a user's approved requests, i.e. downloadable certificates
func (s *CertificateService) ListIssued(ctx context.Context, userID string) ([]*models.CertificateRequest, error) {
	return s.repos.Requests.List(ctx, repositories.RequestFilter{
		UserID: userID,
		Status: string(domain.StatusApproved),
	})
}

// Get gets a request with documents, payload and payment
func (s *CertificateService) Get(ctx context.Context, requestID string) (*RequestDetails, error) {
	request, err := s.repos.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	details := &RequestDetails{CertificateRequest: request}

	switch domain.CertificateType(request.Type) {
	case domain.CertificateBirth:
		if details.Birth, err = s.repos.Certificates.GetBirth(ctx, requestID); err != nil {
			return nil, err
		}
	case domain.CertificateDeath:
		if details.Death, err = s.repos.Certificates.GetDeath(ctx, requestID); err != nil {
			return nil, err
		}
	}

	if details.Payment, err = s.payments.GetByRequest(ctx, requestID); err != nil {
		return nil, err
	}
	return details, nil
}

// Decide approves or rejects a pending request. A request is decided at most once.
func (s *CertificateService) Decide(ctx context.Context, requestID, decision, comment, officerID string) (*models.CertificateRequest, error) {
	status, err := domain.ParseDecision(decision)
	if err != nil {
		return nil, err
	}
	if _, err := domain.StatusPending.Transition(status); err != nil {
		return nil, err
	}

	var approvalDate *time.Time
	if status == domain.StatusApproved {
		now := s.now()
		approvalDate = &now
	}

	ok, err := s.repos.Requests.Decide(ctx, requestID, string(status), strings.TrimSpace(comment), officerID, approvalDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := s.repos.Requests.GetByID(ctx, requestID)
		if err != nil {
			return nil, err
		}
		return nil, &domain.TransitionError{From: current.Status, To: string(status)}
	}

	request, err := s.repos.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	metrics.RequestsDecided.WithLabelValues(string(status)).Inc()
	log.Printf("✅ Request %s %s by %s", requestID, status, officerID)
	s.notifier.RequestDecided(ctx, request.UserID, request.ID, request.Status, request.OfficerComment)

	return request, nil
}
