package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity tables
// ============================================================

// User represents users table (citizens)
type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone      string    `gorm:"size:20" json:"phone"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	IsVerified bool      `gorm:"not null" json:"is_verified"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Officer represents officers table. ID is the human-readable code (OFF001), Seq its number.
type Officer struct {
	ID        string    `gorm:"primaryKey;size:20" json:"id"`
	Seq       int       `gorm:"uniqueIndex;not null" json:"-"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedBy string    `gorm:"size:36" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Officer) TableName() string {
	return "officers"
}

// Sequence represents sequences table: named counters that only move forward
type Sequence struct {
	Name    string `gorm:"primaryKey;size:50"`
	Counter int    `gorm:"not null"`
}

func (Sequence) TableName() string {
	return "sequences"
}

// Supervisor represents supervisors table
type Supervisor struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Supervisor) TableName() string {
	return "supervisors"
}

// Session represents sessions table (one row per login)
type Session struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	AccountID string     `gorm:"size:36;not null;index" json:"account_id"`
	Role      string     `gorm:"size:20;not null" json:"role"`
	Name      string     `gorm:"size:100" json:"name"`
	Email     string     `gorm:"size:100" json:"email"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// VerificationCode represents verification_codes table (one pending code per email)
type VerificationCode struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	CodeHash  string    `gorm:"size:64;not null" json:"-"`
	Attempts  int       `gorm:"not null" json:"attempts"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}

func (v *VerificationCode) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// ============================================================
// Certificate request tables
// ============================================================

// CertificateRequest represents certificate_requests table
type CertificateRequest struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	UserID            string     `gorm:"size:36;not null;index" json:"user_id"`
	Type              string     `gorm:"size:10;not null;index" json:"type"`
	Status            string     `gorm:"size:10;not null;index" json:"status"`
	SubmissionDate    time.Time  `gorm:"not null;index" json:"submission_date"`
	ApprovalDate      *time.Time `json:"approval_date,omitempty"`
	AssignedOfficerID *string    `gorm:"size:36;index" json:"assigned_officer_id,omitempty"`
	OfficerComment    string     `gorm:"type:text" json:"officer_comment,omitempty"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Documents []Document `gorm:"foreignKey:RequestID" json:"documents"`
}

func (CertificateRequest) TableName() string {
	return "certificate_requests"
}

// Document represents documents table (upload metadata only)
type Document struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	RequestID string    `gorm:"size:36;not null;index" json:"-"`
	Position  int       `gorm:"not null" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	MimeType  string    `gorm:"size:100;not null" json:"type"`
	Size      int64     `gorm:"not null" json:"size"`
	Verified  bool      `gorm:"not null" json:"verified"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

// BirthCertificate represents birth_certificates table (1:1 with a birth request)
type BirthCertificate struct {
	RequestID     string `gorm:"primaryKey;size:36" json:"request_id"`
	ChildName     string `gorm:"size:100;not null" json:"child_name"`
	DateOfBirth   string `gorm:"size:10;not null" json:"dob"`
	Gender        string `gorm:"size:10" json:"gender"`
	PlaceOfBirth  string `gorm:"size:200;not null" json:"place_of_birth"`
	FatherName    string `gorm:"size:100" json:"father_name"`
	MotherName    string `gorm:"size:100" json:"mother_name"`
	ParentAadhaar string `gorm:"size:12" json:"parent_aadhaar"`
	Address       string `gorm:"type:text" json:"address"`
}

func (BirthCertificate) TableName() string {
	return "birth_certificates"
}

// DeathCertificate represents death_certificates table (1:1 with a death request)
type DeathCertificate struct {
	RequestID       string `gorm:"primaryKey;size:36" json:"request_id"`
	DeceasedName    string `gorm:"size:100;not null" json:"deceased_name"`
	DateOfDeath     string `gorm:"size:10;not null" json:"dod"`
	Age             int    `json:"age"`
	Gender          string `gorm:"size:10" json:"gender"`
	CauseOfDeath    string `gorm:"type:text" json:"cause_of_death"`
	PlaceOfDeath    string `gorm:"size:200;not null" json:"place_of_death"`
	RelativeName    string `gorm:"size:100" json:"relative_name"`
	Relation        string `gorm:"size:50" json:"relation"`
	RelativeAadhaar string `gorm:"size:12" json:"relative_aadhaar"`
}

func (DeathCertificate) TableName() string {
	return "death_certificates"
}

// Payment represents payments table (1:1 with a certificate request, immutable)
type Payment struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	RequestID     string    `gorm:"uniqueIndex;size:36;not null" json:"request_id"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency      string    `gorm:"size:3;not null" json:"currency"`
	Status        string    `gorm:"size:20;not null" json:"status"`
	TransactionID string    `gorm:"uniqueIndex;size:64;not null" json:"transaction_id"`
	PaymentDate   time.Time `gorm:"not null" json:"payment_date"`
}

func (Payment) TableName() string {
	return "payments"
}

// ============================================================
// Grievance table
// ============================================================

// Grievance represents grievances table
type Grievance struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       string     `gorm:"size:36;not null;index" json:"user_id"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Status       string     `gorm:"size:10;not null;index" json:"status"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	Response     string     `gorm:"type:text" json:"response,omitempty"`
	SupervisorID *string    `gorm:"size:36" json:"supervisor_id,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

func (Grievance) TableName() string {
	return "grievances"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Officer{},
		&Sequence{},
		&Supervisor{},
		&Session{},
		&VerificationCode{},
		&CertificateRequest{},
		&Document{},
		&BirthCertificate{},
		&DeathCertificate{},
		&Payment{},
		&Grievance{},
	)
}
