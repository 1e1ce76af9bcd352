package services

import (
	"context"
	"sync"
	"testing"

	"certportal/internal/adapters/persistence/repositories"
	"certportal/internal/adapters/persistence/testdb"
	"certportal/internal/config"
	"certportal/internal/pkg/password"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.SetCost(bcrypt.MinCost)
	m.Run()
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			SessionMins: 60,
		},
		Verification: config.VerificationConfig{
			CodeMinutes: 15,
			MaxAttempts: 5,
		},
		Payment: config.PaymentConfig{
			Fee:      50,
			Currency: "INR",
		},
		Seed: config.SeedConfig{
			Enabled:            true,
			SupervisorEmail:    "supervisor@gov.in",
			SupervisorPassword: "supervisor123",
			OfficerEmail:       "officer@gov.in",
			OfficerPassword:    "officer123",
		},
	}
}

// recordingNotifier keeps every notification in memory
type recordingNotifier struct {
	mu       sync.Mutex
	codes    map[string]string
	decided  []string
	resolved []string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{codes: make(map[string]string)}
}

func (n *recordingNotifier) VerificationCode(_ context.Context, email, _, code string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[email] = code
}

func (n *recordingNotifier) RequestDecided(_ context.Context, _, requestID, status, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.decided = append(n.decided, requestID+":"+status)
}

func (n *recordingNotifier) GrievanceResolved(_ context.Context, _, grievanceID, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolved = append(n.resolved, grievanceID)
}

// mockGateway is a PaymentGateway driven by testify expectations
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Charge(ctx context.Context, req ChargeRequest) (*PaymentResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*PaymentResult)
	return result, args.Error(1)
}

// fixture wires every service over a fresh database
type fixture struct {
	ctx          context.Context
	cfg          *config.Config
	repos        *repositories.Repositories
	notifier     *recordingNotifier
	auth         *AuthService
	payments     *PaymentService
	certificates *CertificateService
	grievances   *GrievanceService
	accounts     *AccountService
	reports      *ReportService
}

func newFixture(t *testing.T, gateway PaymentGateway) *fixture {
	t.Helper()

	cfg := testConfig()
	repos := repositories.New(testdb.Open(t))
	notifier := newRecordingNotifier()
	if gateway == nil {
		gateway = NewSimulatedGateway()
	}
	payments := NewPaymentService(repos, gateway, cfg)

	ctx := context.Background()
	require.NoError(t, config.NewSeeder(repos, cfg.Seed).Run(ctx))

	return &fixture{
		ctx:          ctx,
		cfg:          cfg,
		repos:        repos,
		notifier:     notifier,
		auth:         NewAuthService(repos, notifier, cfg),
		payments:     payments,
		certificates: NewCertificateService(repos, payments, notifier),
		grievances:   NewGrievanceService(repos, notifier),
		accounts:     NewAccountService(repos),
		reports:      NewReportService(repos),
	}
}

// registerVerified registers and verifies a citizen, returning their id
func (f *fixture) registerVerified(t *testing.T, email string) string {
	t.Helper()

	result, err := f.auth.Register(f.ctx, &RegisterInput{
		Name:     "Alice",
		Email:    email,
		Phone:    "9999999999",
		Password: "password123",
	})
	require.NoError(t, err)

	ok, err := f.auth.Verify(f.ctx, email, result.Code)
	require.NoError(t, err)
	require.True(t, ok)
	return result.UserID
}

func birthInput(files ...FileMeta) *SubmitInput {
	if len(files) == 0 {
		files = []FileMeta{{Name: "hospital.pdf", Type: "application/pdf", Size: 2048}}
	}
	return &SubmitInput{
		Type: "birth",
		Birth: &BirthDetails{
			ChildName:    "Ravi",
			DateOfBirth:  "2024-01-10",
			Gender:       "male",
			PlaceOfBirth: "City Hospital",
			FatherName:   "Arun",
			MotherName:   "Meera",
		},
		Files: files,
	}
}

func deathInput() *SubmitInput {
	return &SubmitInput{
		Type: "death",
		Death: &DeathDetails{
			DeceasedName:    "Kamala",
			DateOfDeath:     "2024-02-01",
			Age:             81,
			PlaceOfDeath:    "Home",
			RelativeName:    "Suresh",
			Relation:        "son",
			RelativeAadhaar: "123412341234",
		},
		Files: []FileMeta{{Name: "report.png", Type: "image/png", Size: 4096}},
	}
}
