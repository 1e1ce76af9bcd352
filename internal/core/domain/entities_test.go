package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatusTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    RequestStatus
		to      RequestStatus
		wantErr bool
	}{
		{"pending to approved", StatusPending, StatusApproved, false},
		{"pending to rejected", StatusPending, StatusRejected, false},
		{"pending to pending", StatusPending, StatusPending, true},
		{"approved to rejected", StatusApproved, StatusRejected, true},
		{"approved to approved", StatusApproved, StatusApproved, true},
		{"rejected to approved", StatusRejected, StatusApproved, true},
		{"rejected to pending", StatusRejected, StatusPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Transition(tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTransition))
				assert.Equal(t, tt.from, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestGrievanceStatusTransition(t *testing.T) {
	got, err := GrievancePending.Transition(GrievanceResolved)
	require.NoError(t, err)
	assert.Equal(t, GrievanceResolved, got)

	_, err = GrievanceResolved.Transition(GrievanceResolved)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = GrievanceResolved.Transition(GrievancePending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("Approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, d)

	_, err = ParseDecision("pending")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDecision("maybe")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" OFFICER ")
	require.NoError(t, err)
	assert.Equal(t, RoleOfficer, r)

	_, err = ParseRole("admin")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Field)
}

func TestPeriodCutoff(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.March, 8, 10, 30, 0, 0, time.UTC), PeriodWeek.Cutoff(now))
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), PeriodMonth.Cutoff(now))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), PeriodYear.Cutoff(now))
	assert.True(t, PeriodAll.Cutoff(now).Equal(time.Unix(0, 0)))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodAll, p)

	p, err = ParsePeriod("Week")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)

	_, err = ParsePeriod("decade")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEntityNotFoundErrorsMatchSentinel(t *testing.T) {
	for _, err := range []error{ErrAccountNotFound, ErrRequestNotFound, ErrGrievanceNotFound, ErrPaymentNotFound} {
		assert.ErrorIs(t, err, ErrNotFound)
	}
}
