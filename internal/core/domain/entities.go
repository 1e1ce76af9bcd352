package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role represents an account role. It is fixed for the lifetime of a session.
type Role string

const (
	RoleUser       Role = "user"
	RoleOfficer    Role = "officer"
	RoleSupervisor Role = "supervisor"
)

// ParseRole parses a role name (case-insensitive)
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleUser, RoleOfficer, RoleSupervisor:
		return r, nil
	}
	return "", NewValidationError("role", "must be one of user, officer, supervisor")
}

// CertificateType is the kind of certificate requested
type CertificateType string

const (
	CertificateBirth CertificateType = "birth"
	CertificateDeath CertificateType = "death"
)

// ParseCertificateType parses a certificate type
func ParseCertificateType(s string) (CertificateType, error) {
	switch t := CertificateType(strings.ToLower(strings.TrimSpace(s))); t {
	case CertificateBirth, CertificateDeath:
		return t, nil
	}
	return "", NewValidationError("type", "must be birth or death")
}

// RequestStatus is the state of a certificate request.
//
//	pending --approve--> approved
//	pending --reject---> rejected
//
// approved and rejected are terminal.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// ParseRequestStatus parses a request status
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch st := RequestStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", NewValidationError("status", "must be pending, approved or rejected")
}

// IsTerminal reports whether no transition leaves s
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Transition returns the next status or a TransitionError
func (s RequestStatus) Transition(to RequestStatus) (RequestStatus, error) {
	if s == StatusPending && to.IsTerminal() {
		return to, nil
	}
	return s, &TransitionError{From: string(s), To: string(to)}
}

// ParseDecision parses an officer decision. Only terminal statuses are decisions.
func ParseDecision(s string) (RequestStatus, error) {
	st, err := ParseRequestStatus(s)
	if err != nil || !st.IsTerminal() {
		return "", NewValidationError("decision", "must be approved or rejected")
	}
	return st, nil
}

// GrievanceStatus is the state of a grievance: pending, then resolved (terminal).
type GrievanceStatus string

const (
	GrievancePending  GrievanceStatus = "pending"
	GrievanceResolved GrievanceStatus = "resolved"
)

// ParseGrievanceStatus parses a grievance status
func ParseGrievanceStatus(s string) (GrievanceStatus, error) {
	switch st := GrievanceStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case GrievancePending, GrievanceResolved:
		return st, nil
	}
	return "", NewValidationError("status", "must be pending or resolved")
}

// Transition returns the next grievance status or a TransitionError
func (s GrievanceStatus) Transition(to GrievanceStatus) (GrievanceStatus, error) {
	if s == GrievancePending && to == GrievanceResolved {
		return to, nil
	}
	return s, &TransitionError{From: string(s), To: string(to)}
}

// PaymentStatus is the outcome reported by a payment gateway
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Session is the authenticated, role-tagged context of one login
type Session struct {
	ID        string    `json:"-"`
	AccountID string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"-"`
}

// Period is a reporting window
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod parses a reporting period; empty means all
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodAll, nil
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	}
	return "", NewValidationError("period", "must be week, month, year or all")
}

// Cutoff returns the earliest submission time included in the period
func (p Period) Cutoff(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Unix(0, 0).UTC()
	}
}

// NormalizeEmail trims and lower-cases an email address. Emails are stored and
// compared in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OfficerCode formats an officer sequence number as its public id (OFF001)
func OfficerCode(seq int) string {
	return fmt.Sprintf("OFF%03d", seq)
}
