package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode      string
	Port         string
	Database     DatabaseConfig
	JWT          JWTConfig
	Verification VerificationConfig
	Payment      PaymentConfig
	Seed         SeedConfig

	BcryptCost      int
	CleanupSchedule string
	NotifyWebhook   string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret      string
	SessionMins int
}

// VerificationConfig holds email verification code settings
type VerificationConfig struct {
	CodeMinutes int
	MaxAttempts int
}

// PaymentConfig holds the certificate fee
type PaymentConfig struct {
	Fee      float64
	Currency string
}

// SeedConfig holds the default staff accounts created on an empty database
type SeedConfig struct {
	Enabled            bool
	SupervisorEmail    string
	SupervisorPassword string
	OfficerEmail       string
	OfficerPassword    string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	database, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	fee, err := strconv.ParseFloat(getEnv("CERTIFICATE_FEE", "50"), 64)
	if err != nil || fee < 0 {
		return nil, fmt.Errorf("invalid CERTIFICATE_FEE: '%s'", os.Getenv("CERTIFICATE_FEE"))
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: database,
		JWT:      loadJWTConfig(appMode),
		Verification: VerificationConfig{
			CodeMinutes: getEnvInt("VERIFICATION_CODE_MINUTES", 15),
			MaxAttempts: getEnvInt("VERIFICATION_MAX_ATTEMPTS", 5),
		},
		Payment: PaymentConfig{
			Fee:      fee,
			Currency: "INR",
		},
		Seed:            loadSeedConfig(),
		BcryptCost:      getEnvInt("BCRYPT_COST", 12),
		CleanupSchedule: getEnv("CLEANUP_SCHEDULE", "@every 1h"),
		NotifyWebhook:   getEnv("NOTIFY_WEBHOOK_URL", ""),
	}

	if config.IsProd() && config.JWT.Secret == defaultJWTSecret {
		return nil, fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s]", appMode, database.Driver)
	return config, nil
}

const defaultJWTSecret = "default_secret"

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", "mysql")))
	if driver != DriverMySQL && driver != DriverSQLite {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'sqlite')", driver)
	}

	return DatabaseConfig{
		Driver:     driver,
		Host:       getEnv(prefix+"DB_HOST", "localhost"),
		Port:       getEnv(prefix+"DB_PORT", "3306"),
		User:       getEnv(prefix+"DB_USER", "root"),
		Password:   getEnv(prefix+"DB_PASS", ""),
		DBName:     getEnv(prefix+"DB_NAME", "certportal"),
		SQLitePath: getEnv("SQLITE_PATH", "certportal.db"),
	}, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return JWTConfig{
		Secret:      getEnv(prefix+"JWT_SECRET", defaultJWTSecret),
		SessionMins: getEnvInt("SESSION_MINUTES", 480),
	}
}

// loadSeedConfig loads the default staff accounts
func loadSeedConfig() SeedConfig {
	enabled, err := strconv.ParseBool(getEnv("SEED_DEFAULTS", "true"))
	if err != nil {
		enabled = true
	}

	return SeedConfig{
		Enabled:            enabled,
		SupervisorEmail:    getEnv("DEFAULT_SUPERVISOR_EMAIL", "supervisor@gov.in"),
		SupervisorPassword: getEnv("DEFAULT_SUPERVISOR_PASSWORD", "supervisor123"),
		OfficerEmail:       getEnv("DEFAULT_OFFICER_EMAIL", "officer@gov.in"),
		OfficerPassword:    getEnv("DEFAULT_OFFICER_PASSWORD", "officer123"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets a positive integer environment variable, falling back on bad input
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// SessionTTL returns how long a login session stays valid
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.JWT.SessionMins) * time.Minute
}

// CodeTTL returns how long a verification code stays valid
func (c *Config) CodeTTL() time.Duration {
	return time.Duration(c.Verification.CodeMinutes) * time.Minute
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return origins
}
