package services

import (
	"context"
	"math"
	"time"

	"certportal/internal/adapters/persistence/models"
	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/core/domain"
)

// ============================================================
// Aggregations
// ============================================================

// StatusCounts counts requests per status
type StatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// TypeCounts counts requests per certificate type
type TypeCounts struct {
	BirthCertificates int64 `json:"birth_certificates"`
	DeathCertificates int64 `json:"death_certificates"`
}

// GrievanceCounts counts grievances per status
type GrievanceCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Resolved int64 `json:"resolved"`
}

// RevenueSummary totals payments
type RevenueSummary struct {
	Total     float64 `json:"total"`
	Completed int64   `json:"completed"`
}

// CountByStatus counts requests per status
func CountByStatus(requests []*models.CertificateRequest) StatusCounts {
	var c StatusCounts
	for _, r := range requests {
		c.Total++
		switch domain.RequestStatus(r.Status) {
		case domain.StatusPending:
			c.Pending++
		case domain.StatusApproved:
			c.Approved++
		case domain.StatusRejected:
			c.Rejected++
		}
	}
	return c
}

// CountByType counts requests per certificate type
func CountByType(requests []*models.CertificateRequest) TypeCounts {
	var c TypeCounts
	for _, r := range requests {
		switch domain.CertificateType(r.Type) {
		case domain.CertificateBirth:
			c.BirthCertificates++
		case domain.CertificateDeath:
			c.DeathCertificates++
		}
	}
	return c
}

// CountGrievances counts grievances per status
func CountGrievances(grievances []*models.Grievance) GrievanceCounts {
	var c GrievanceCounts
	for _, g := range grievances {
		c.Total++
		switch domain.GrievanceStatus(g.Status) {
		case domain.GrievancePending:
			c.Pending++
		case domain.GrievanceResolved:
			c.Resolved++
		}
	}
	return c
}

// ApprovalRate returns approved/total as a percentage with one decimal. Zero total gives 0.
func ApprovalRate(approved, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(approved)/float64(total)*1000) / 10
}

// AverageProcessingDays is the mean time from submission to approval in days,
// rounded. Requests without an approval date are ignored.
func AverageProcessingDays(requests []*models.CertificateRequest) int {
	var total time.Duration
	var n int
	for _, r := range requests {
		if r.ApprovalDate == nil {
			continue
		}
		total += r.ApprovalDate.Sub(r.SubmissionDate)
		n++
	}
	if n == 0 {
		return 0
	}
	days := total.Hours() / 24 / float64(n)
	return int(math.Round(days))
}

// FilterByPeriod keeps requests submitted at or after cutoff
func FilterByPeriod(requests []*models.CertificateRequest, cutoff time.Time) []*models.CertificateRequest {
	out := make([]*models.CertificateRequest, 0, len(requests))
	for _, r := range requests {
		if !r.SubmissionDate.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// Revenue sums every payment amount
func Revenue(payments []*models.Payment) RevenueSummary {
	var s RevenueSummary
	for _, p := range payments {
		s.Total += p.Amount
		if domain.PaymentStatus(p.Status) == domain.PaymentCompleted {
			s.Completed++
		}
	}
	return s
}

// ============================================================
// Report
// ============================================================

// ReportStatistics is the statistics block of an exported report
type ReportStatistics struct {
	TotalRequests         int64   `json:"total_requests"`
	PendingRequests       int64   `json:"pending_requests"`
	ApprovedRequests      int64   `json:"approved_requests"`
	RejectedRequests      int64   `json:"rejected_requests"`
	ApprovalRate          float64 `json:"approval_rate"`
	AverageProcessingTime int     `json:"average_processing_time"`
	TotalRevenue          float64 `json:"total_revenue"`
	CompletedPayments     int64   `json:"completed_payments"`
	TotalUsers            int64   `json:"total_users"`
	VerifiedUsers         int64   `json:"verified_users"`
	UnverifiedUsers       int64   `json:"unverified_users"`
	TotalOfficers         int64   `json:"total_officers"`
	OfficersThisMonth     int64   `json:"officers_this_month"`
	TotalGrievances       int64   `json:"total_grievances"`
	PendingGrievances     int64   `json:"pending_grievances"`
	ResolvedGrievances    int64   `json:"resolved_grievances"`
}

// Report is the exported system report
type Report struct {
	GeneratedBy          string           `json:"generated_by"`
	GeneratedAt          time.Time        `json:"generated_at"`
	Period               domain.Period    `json:"period"`
	Cutoff               time.Time        `json:"cutoff"`
	Statistics           ReportStatistics `json:"statistics"`
	CertificateBreakdown TypeCounts       `json:"certificate_breakdown"`
	PeriodRequests       StatusCounts     `json:"period_requests"`
}

// ReportService computes reports and dashboards. Nothing is cached.
type ReportService struct {
	repos *repositories.Repositories
	now   func() time.Time
}

// NewReportService creates a new report service
func NewReportService(repos *repositories.Repositories) *ReportService {
	return &ReportService{repos: repos, now: time.Now}
}

// Generate builds the report for a period
func (s *ReportService) Generate(ctx context.Context, period, generatedBy string) (*Report, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cutoff := p.Cutoff(now)

	requests, err := s.repos.Requests.List(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	payments, err := s.repos.Payments.List(ctx)
	if err != nil {
		return nil, err
	}
	grievances, err := s.repos.Grievances.List(ctx, repositories.GrievanceFilter{})
	if err != nil {
		return nil, err
	}
	totalUsers, verifiedUsers, err := s.repos.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	officers, err := s.repos.Officers.List(ctx, "")
	if err != nil {
		return nil, err
	}

	byStatus := CountByStatus(requests)
	revenue := Revenue(payments)
	grievanceCounts := CountGrievances(grievances)

	monthStart := domain.PeriodMonth.Cutoff(now)
	var officersThisMonth int64
	for _, o := range officers {
		if !o.CreatedAt.Before(monthStart) {
			officersThisMonth++
		}
	}

	return &Report{
		GeneratedBy: generatedBy,
		GeneratedAt: now,
		Period:      p,
		Cutoff:      cutoff,
		Statistics: ReportStatistics{
			TotalRequests:         byStatus.Total,
			PendingRequests:       byStatus.Pending,
			ApprovedRequests:      byStatus.Approved,
			RejectedRequests:      byStatus.Rejected,
			ApprovalRate:          ApprovalRate(byStatus.Approved, byStatus.Total),
			AverageProcessingTime: AverageProcessingDays(requests),
			TotalRevenue:          revenue.Total,
			CompletedPayments:     revenue.Completed,
			TotalUsers:            totalUsers,
			VerifiedUsers:         verifiedUsers,
			UnverifiedUsers:       totalUsers - verifiedUsers,
			TotalOfficers:         int64(len(officers)),
			OfficersThisMonth:     officersThisMonth,
			TotalGrievances:       grievanceCounts.Total,
			PendingGrievances:     grievanceCounts.Pending,
			ResolvedGrievances:    grievanceCounts.Resolved,
		},
		CertificateBreakdown: CountByType(requests),
		PeriodRequests:       CountByStatus(FilterByPeriod(requests, cutoff)),
	}, nil
}

// ============================================================
// Dashboards
// ============================================================

const recentLimit = 5

// UserDashboardData represents a citizen's dashboard
type UserDashboardData struct {
	Requests         StatusCounts                 `json:"requests"`
	IssuedCount      int64                        `json:"issued_count"`
	OpenGrievances   int64                        `json:"open_grievances"`
	RecentRequests   []*models.CertificateRequest `json:"recent_requests"`
	CertificateTypes TypeCounts                   `json:"certificate_types"`
}

// OfficerDashboardData represents an officer's dashboard
type OfficerDashboardData struct {
	PendingQueue    int64                        `json:"pending_queue"`
	MyDecisions     StatusCounts                 `json:"my_decisions"`
	OldestPending   []*models.CertificateRequest `json:"oldest_pending"`
	AverageDays     int                          `json:"average_processing_days"`
	DecidedThisWeek int64                        `json:"decided_this_week"`
}

// SupervisorDashboardData represents the supervisor overview
type SupervisorDashboardData struct {
	Requests          StatusCounts                 `json:"requests"`
	TotalUsers        int64                        `json:"total_users"`
	VerifiedUsers     int64                        `json:"verified_users"`
	TotalOfficers     int64                        `json:"total_officers"`
	Grievances        GrievanceCounts              `json:"grievances"`
	TotalRevenue      float64                      `json:"total_revenue"`
	ApprovalRate      float64                      `json:"approval_rate"`
	RecentRequests    []*models.CertificateRequest `json:"recent_requests"`
	PendingGrievances []*models.Grievance          `json:"pending_grievances"`
}

// UserDashboard summarizes one citizen's requests and grievances
func (s *ReportService) UserDashboard(ctx context.Context, userID string) (*UserDashboardData, error) {
	requests, err := s.repos.Requests.List(ctx, repositories.RequestFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	grievances, err := s.repos.Grievances.List(ctx, repositories.GrievanceFilter{
		UserID: userID,
		Status: string(domain.GrievancePending),
	})
	if err != nil {
		return nil, err
	}

	counts := CountByStatus(requests)
	return &UserDashboardData{
		Requests:         counts,
		IssuedCount:      counts.Approved,
		OpenGrievances:   int64(len(grievances)),
		RecentRequests:   newestFirst(requests, recentLimit),
		CertificateTypes: CountByType(requests),
	}, nil
}

// OfficerDashboard summarizes the pending queue and the officer's own decisions
func (s *ReportService) OfficerDashboard(ctx context.Context, officerID string) (*OfficerDashboardData, error) {
	pending, err := s.repos.Requests.List(ctx, repositories.RequestFilter{Status: string(domain.StatusPending)})
	if err != nil {
		return nil, err
	}
	mine, err := s.repos.Requests.List(ctx, repositories.RequestFilter{OfficerID: officerID})
	if err != nil {
		return nil, err
	}

	weekAgo := domain.PeriodWeek.Cutoff(s.now())
	var decidedThisWeek int64
	for _, r := range mine {
		if !r.UpdatedAt.Before(weekAgo) {
			decidedThisWeek++
		}
	}

	oldest := pending
	if len(oldest) > recentLimit {
		oldest = oldest[:recentLimit]
	}

	return &OfficerDashboardData{
		PendingQueue:    int64(len(pending)),
		MyDecisions:     CountByStatus(mine),
		OldestPending:   oldest,
		AverageDays:     AverageProcessingDays(mine),
		DecidedThisWeek: decidedThisWeek,
	}, nil
}

// SupervisorDashboard summarizes the whole system
func (s *ReportService) SupervisorDashboard(ctx context.Context) (*SupervisorDashboardData, error) {
	requests, err := s.repos.Requests.List(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	grievances, err := s.repos.Grievances.List(ctx, repositories.GrievanceFilter{})
	if err != nil {
		return nil, err
	}
	payments, err := s.repos.Payments.List(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, verifiedUsers, err := s.repos.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalOfficers, err := s.repos.Officers.Count(ctx)
	if err != nil {
		return nil, err
	}

	pendingGrievances := make([]*models.Grievance, 0)
	for _, g := range grievances {
		if domain.GrievanceStatus(g.Status) == domain.GrievancePending {
			pendingGrievances = append(pendingGrievances, g)
		}
	}

	counts := CountByStatus(requests)
	return &SupervisorDashboardData{
		Requests:          counts,
		TotalUsers:        totalUsers,
		VerifiedUsers:     verifiedUsers,
		TotalOfficers:     totalOfficers,
		Grievances:        CountGrievances(grievances),
		TotalRevenue:      Revenue(payments).Total,
		ApprovalRate:      ApprovalRate(counts.Approved, counts.Total),
		RecentRequests:    newestFirst(requests, recentLimit),
		PendingGrievances: pendingGrievances,
	}, nil
}

// newestFirst returns up to n requests from a submission-ordered list, newest first
func newestFirst(requests []*models.CertificateRequest, n int) []*models.CertificateRequest {
	out := make([]*models.CertificateRequest, 0, n)
	for i := len(requests) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, requests[i])
	}
	return out
}
