package config

import (
	"context"
	"log"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/core/domain"
	"certportal/internal/pkg/password"

	"github.com/google/uuid"
)

// Seeder handles database seeding
type Seeder struct {
	repos *repositories.Repositories
	seed  SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(repos *repositories.Repositories, seed SeedConfig) *Seeder {
	return &Seeder{repos: repos, seed: seed}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	if !s.seed.Enabled {
		return nil
	}

	log.Println("🌱 Running database seeders...")

	if err := s.seedSupervisor(ctx); err != nil {
		return err
	}
	if err := s.seedOfficer(ctx); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSupervisor creates the default supervisor when none exists
func (s *Seeder) seedSupervisor(ctx context.Context) error {
	count, err := s.repos.Supervisors.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	hashedPassword, err := password.Hash(s.seed.SupervisorPassword)
	if err != nil {
		return err
	}

	supervisor := &models.Supervisor{
		ID:       uuid.NewString(),
		Name:     "Default Supervisor",
		Email:    domain.NormalizeEmail(s.seed.SupervisorEmail),
		Password: hashedPassword,
	}
	if err := s.repos.Supervisors.Create(ctx, supervisor); err != nil {
		return err
	}

	log.Printf("✅ Supervisor created: %s", supervisor.Email)
	return nil
}

// seedOfficer creates the default officer when no officer exists. The code comes
// from the officer sequence, so it is OFF001 only on a fresh database.
func (s *Seeder) seedOfficer(ctx context.Context) error {
	count, err := s.repos.Officers.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	hashedPassword, err := password.Hash(s.seed.OfficerPassword)
	if err != nil {
		return err
	}

	officer := &models.Officer{
		Name:     "Default Officer",
		Email:    domain.NormalizeEmail(s.seed.OfficerEmail),
		Password: hashedPassword,
	}
	err = s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		seq, err := tx.Officers.NextSeq(ctx)
		if err != nil {
			return err
		}
		officer.ID = domain.OfficerCode(seq)
		officer.Seq = seq
		return tx.Officers.Create(ctx, officer)
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Officer created: %s (%s)", officer.ID, officer.Email)
	return nil
}
