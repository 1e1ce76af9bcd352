package services

import (
	"context"
	"log"
	"strings"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/core/domain"
	"certportal/internal/pkg/metrics"

	"github.com/google/uuid"
)

// GrievanceService is the grievance ledger
type GrievanceService struct {
	repos    *repositories.Repositories
	notifier Notifier
	now      func() time.Time
}

// NewGrievanceService creates a new grievance service
func NewGrievanceService(repos *repositories.Repositories, notifier Notifier) *GrievanceService {
	return &GrievanceService{
		repos:    repos,
		notifier: notifier,
		now:      time.Now,
	}
}

// ListGrievancesInput represents the administrative grievance filter
type ListGrievancesInput struct {
	Status string
	Search string
}

// File records a new pending grievance
func (s *GrievanceService) File(ctx context.Context, userID, description string) (*models.Grievance, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.NewValidationError("description", "is required")
	}

	grievance := &models.Grievance{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: description,
		Status:      string(domain.GrievancePending),
		CreatedAt:   s.now(),
	}
	if err := s.repos.Grievances.Create(ctx, grievance); err != nil {
		return nil, err
	}

	metrics.Grievances.WithLabelValues("filed").Inc()
	return grievance, nil
}

// ListForUser lists a user's grievances oldest first
func (s *GrievanceService) ListForUser(ctx context.Context, userID string) ([]*models.Grievance, error) {
	return s.repos.Grievances.List(ctx, repositories.GrievanceFilter{UserID: userID})
}

// ListAll lists every grievance oldest first
func (s *GrievanceService) ListAll(ctx context.Context, input ListGrievancesInput) ([]*models.Grievance, error) {
	filter := repositories.GrievanceFilter{Search: input.Search}
	if input.Status != "" {
		st, err := domain.ParseGrievanceStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(st)
	}
	return s.repos.Grievances.List(ctx, filter)
}

func (s *GrievanceService) Get(ctx context.Context, id string) (*models.Grievance, error) {
	return s.repos.Grievances.GetByID(ctx, id)
}

// Resolve answers a pending grievance. A grievance is resolved at most once.
func (s *GrievanceService) Resolve(ctx context.Context, id, response, supervisorID string) (*models.Grievance, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, domain.NewValidationError("response", "is required")
	}

	ok, err := s.repos.Grievances.Resolve(ctx, id, response, supervisorID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := s.repos.Grievances.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &domain.TransitionError{From: current.Status, To: string(domain.GrievanceResolved)}
	}

	grievance, err := s.repos.Grievances.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.Grievances.WithLabelValues("resolved").Inc()
	log.Printf("✅ Grievance %s resolved by %s", id, supervisorID)
	s.notifier.GrievanceResolved(ctx, grievance.UserID, grievance.ID, grievance.Response)

	return grievance, nil
}
