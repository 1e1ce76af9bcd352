package services

import (
	"testing"

	"certportal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrievanceLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	userID := f.registerVerified(t, "alice@example.com")

	_, err := f.grievances.File(f.ctx, userID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	grievance, err := f.grievances.File(f.ctx, userID, "  My request has been pending for weeks  ")
	require.NoError(t, err)
	assert.Equal(t, string(domain.GrievancePending), grievance.Status)
	assert.Equal(t, "My request has been pending for weeks", grievance.Description)

	_, err = f.grievances.Resolve(f.ctx, grievance.ID, " ", "sup-1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	resolved, err := f.grievances.Resolve(f.ctx, grievance.ID, "Contact support", "sup-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.GrievanceResolved), resolved.Status)
	assert.Equal(t, "Contact support", resolved.Response)
	require.NotNil(t, resolved.ResolvedAt)
	require.NotNil(t, resolved.SupervisorID)
	assert.Equal(t, "sup-1", *resolved.SupervisorID)
	assert.Equal(t, []string{grievance.ID}, f.notifier.resolved)

	_, err = f.grievances.Resolve(f.ctx, grievance.ID, "Again", "sup-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.grievances.Resolve(f.ctx, "missing", "Anything", "sup-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGrievanceListings(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.registerVerified(t, "alice@example.com")
	bob := f.registerVerified(t, "bob@example.com")

	first, err := f.grievances.File(f.ctx, alice, "Payment charged twice")
	require.NoError(t, err)
	_, err = f.grievances.File(f.ctx, bob, "Cannot download certificate")
	require.NoError(t, err)
	_, err = f.grievances.Resolve(f.ctx, first.ID, "Refunded", "sup-1")
	require.NoError(t, err)

	mine, err := f.grievances.ListForUser(f.ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	pending, err := f.grievances.ListAll(f.ctx, ListGrievancesInput{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, bob, pending[0].UserID)

	found, err := f.grievances.ListAll(f.ctx, ListGrievancesInput{Search: "DOWNLOAD"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = f.grievances.ListAll(f.ctx, ListGrievancesInput{Status: "closed"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
