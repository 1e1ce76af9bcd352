package services

import (
	"testing"
	"time"

	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateOfficerAssignsSequentialCodes(t *testing.T) {
	f := newFixture(t, nil)

	second, err := f.accounts.CreateOfficer(f.ctx, "sup-1", &CreateOfficerInput{
		Name: "Priya", Email: "Priya@gov.in", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "OFF002", second.ID)
	assert.Equal(t, "priya@gov.in", second.Email)
	assert.Equal(t, "sup-1", second.CreatedBy)

	third, err := f.accounts.CreateOfficer(f.ctx, "sup-1", &CreateOfficerInput{
		Name: "Kiran", Email: "kiran@gov.in", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "OFF003", third.ID)

	require.NoError(t, f.accounts.DeleteOfficer(f.ctx, "OFF002"))

	fourth, err := f.accounts.CreateOfficer(f.ctx, "sup-1", &CreateOfficerInput{
		Name: "Dev", Email: "dev@gov.in", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "OFF004", fourth.ID)

	_, err = f.accounts.CreateOfficer(f.ctx, "sup-1", &CreateOfficerInput{
		Name: "Copy", Email: "kiran@gov.in", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)

	_, err = f.accounts.CreateOfficer(f.ctx, "sup-1", &CreateOfficerInput{Name: "", Email: "x@gov.in", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	officers, err := f.accounts.ListOfficers(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, officers, 3)
	assert.Equal(t, "OFF001", officers[0].ID)
	assert.Equal(t, "OFF003", officers[1].ID)
	assert.Equal(t, "OFF004", officers[2].ID)
}

func TestDeletedNewestOfficerCodeIsNotReissued(t *testing.T) {
	f := newFixture(t, nil)
	userID := f.registerVerified(t, "alice@example.com")

	departing, err := f.accounts.CreateOfficer(f.ctx, "sup-1", &CreateOfficerInput{
		Name: "Priya", Email: "priya@gov.in", Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, "OFF002", departing.ID)

	request, err := f.certificates.Submit(f.ctx, userID, birthInput())
	require.NoError(t, err)
	_, err = f.certificates.Decide(f.ctx, request.ID, "approved", "", departing.ID)
	require.NoError(t, err)

	require.NoError(t, f.accounts.DeleteOfficer(f.ctx, departing.ID))

	replacement, err := f.accounts.CreateOfficer(f.ctx, "sup-1", &CreateOfficerInput{
		Name: "Kiran", Email: "kiran@gov.in", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEqual(t, departing.ID, replacement.ID)
	assert.Equal(t, "OFF003", replacement.ID)

	dashboard, err := f.reports.OfficerDashboard(f.ctx, replacement.ID)
	require.NoError(t, err)
	assert.Zero(t, dashboard.MyDecisions.Approved)
	assert.Zero(t, dashboard.MyDecisions.Total)
}

func TestUpdateOfficer(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.accounts.CreateOfficer(f.ctx, "sup-1", &CreateOfficerInput{
		Name: "Priya", Email: "priya@gov.in", Password: "password123",
	})
	require.NoError(t, err)

	updated, err := f.accounts.UpdateOfficer(f.ctx, "OFF002", &UpdateOfficerInput{
		Name:     strPtr("Priya S"),
		Password: strPtr("newpassword1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya S", updated.Name)

	session, err := f.auth.Authenticate(f.ctx, "OFF002", "newpassword1", "officer")
	require.NoError(t, err)
	assert.NotNil(t, session)

	_, err = f.accounts.UpdateOfficer(f.ctx, "OFF002", &UpdateOfficerInput{Email: strPtr("officer@gov.in")})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)

	_, err = f.accounts.UpdateOfficer(f.ctx, "OFF999", &UpdateOfficerInput{Name: strPtr("Nobody")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteOfficerRevokesSessions(t *testing.T) {
	f := newFixture(t, nil)

	session, err := f.auth.Authenticate(f.ctx, "OFF001", "officer123", "officer")
	require.NoError(t, err)
	require.NotNil(t, session)

	require.NoError(t, f.accounts.DeleteOfficer(f.ctx, "OFF001"))

	_, err = f.auth.ValidateSession(f.ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	assert.ErrorIs(t, f.accounts.DeleteOfficer(f.ctx, "OFF001"), domain.ErrNotFound)
}

func TestListUsersByVerification(t *testing.T) {
	f := newFixture(t, nil)
	f.registerVerified(t, "alice@example.com")
	_, err := f.auth.Register(f.ctx, &RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	all, err := f.accounts.ListUsers(f.ctx, ListUsersInput{Verified: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unverified, err := f.accounts.ListUsers(f.ctx, ListUsersInput{Verified: "unverified"})
	require.NoError(t, err)
	require.Len(t, unverified, 1)
	assert.Equal(t, "bob@example.com", unverified[0].Email)

	_, err = f.accounts.ListUsers(f.ctx, ListUsersInput{Verified: "maybe"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.registerVerified(t, "alice@example.com")
	bob := f.registerVerified(t, "bob@example.com")

	_, err := f.certificates.Submit(f.ctx, alice, birthInput(
		FileMeta{Name: "a.pdf", Type: "application/pdf", Size: 10},
		FileMeta{Name: "b.pdf", Type: "application/pdf", Size: 10},
	))
	require.NoError(t, err)
	_, err = f.certificates.Submit(f.ctx, alice, deathInput())
	require.NoError(t, err)
	kept, err := f.certificates.Submit(f.ctx, bob, birthInput())
	require.NoError(t, err)
	_, err = f.grievances.File(f.ctx, alice, "Slow processing")
	require.NoError(t, err)
	_, err = f.auth.Authenticate(f.ctx, "alice@example.com", "password123", "user")
	require.NoError(t, err)

	details, err := f.accounts.GetUser(f.ctx, alice)
	require.NoError(t, err)
	assert.Len(t, details.Requests, 2)
	assert.Len(t, details.Grievances, 1)

	require.NoError(t, f.accounts.DeleteUser(f.ctx, alice))

	_, err = f.accounts.GetUser(f.ctx, alice)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.accounts.DeleteUser(f.ctx, alice), domain.ErrNotFound)

	counts := map[string]int64{}
	for _, table := range []string{"documents", "birth_certificates", "death_certificates", "payments", "certificate_requests", "grievances", "sessions"} {
		var n int64
		require.NoError(t, f.repos.DB().Table(table).Count(&n).Error)
		counts[table] = n
	}
	assert.Equal(t, map[string]int64{
		"documents":            1,
		"birth_certificates":   1,
		"death_certificates":   0,
		"payments":             1,
		"certificate_requests": 1,
		"grievances":           0,
		"sessions":             0,
	}, counts)

	remaining, err := f.repos.Requests.List(f.ctx, repositories.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}

func TestCleanupRemovesDeadSessionsAndCodes(t *testing.T) {
	f := newFixture(t, nil)

	live, err := f.auth.Authenticate(f.ctx, "OFF001", "officer123", "officer")
	require.NoError(t, err)
	ended, err := f.auth.Authenticate(f.ctx, "supervisor@gov.in", "supervisor123", "supervisor")
	require.NoError(t, err)
	require.NoError(t, f.auth.EndSession(f.ctx, ended.ID))

	_, err = f.auth.Register(f.ctx, &RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	cleanup := NewCleanupService(f.repos, "@every 1h")

	sessions, codes, err := cleanup.RunOnce(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sessions)
	assert.Equal(t, int64(0), codes)

	cleanup.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	sessions, codes, err = cleanup.RunOnce(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sessions)
	assert.Equal(t, int64(1), codes)

	_, err = f.repos.Sessions.GetByID(f.ctx, live.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCleanupRejectsBadSchedule(t *testing.T) {
	f := newFixture(t, nil)
	cleanup := NewCleanupService(f.repos, "not a schedule")
	assert.Error(t, cleanup.Start())
}
