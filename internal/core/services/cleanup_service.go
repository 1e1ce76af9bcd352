package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"certportal/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CleanupService periodically purges dead sessions and expired verification codes
type CleanupService struct {
	repos    *repositories.Repositories
	cron     *cron.Cron
	schedule string
	now      func() time.Time
}

// NewCleanupService creates a cleanup service running on a cron schedule (e.g. "@every 1h")
func NewCleanupService(repos *repositories.Repositories, schedule string) *CleanupService {
	return &CleanupService{
		repos:    repos,
		cron:     cron.New(),
		schedule: schedule,
		now:      time.Now,
	}
}

// Start registers the job and starts the scheduler
func (s *CleanupService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, _, err := s.RunOnce(ctx); err != nil {
			log.Printf("❌ Cleanup failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.Printf("⏰ Cleanup scheduled [%s]", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job
func (s *CleanupService) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce deletes expired or revoked sessions and expired codes
func (s *CleanupService) RunOnce(ctx context.Context) (sessions int64, codes int64, err error) {
	now := s.now()

	sessions, err = s.repos.Sessions.DeleteExpired(ctx, now)
	if err != nil {
		return 0, 0, err
	}
	codes, err = s.repos.Codes.DeleteExpired(ctx, now)
	if err != nil {
		return sessions, 0, err
	}

	if sessions > 0 || codes > 0 {
		log.Printf("🧹 Cleanup removed %d sessions, %d verification codes", sessions, codes)
	}
	return sessions, codes, nil
}
