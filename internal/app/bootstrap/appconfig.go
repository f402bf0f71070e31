// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// ports, TLS, logging and CORS; everything TeamHub-specific lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: teamhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Confirmation tokens
	JWTSecret       string
	ConfirmTokenTTL time.Duration

	// "none", "team" or "global"
	EmailUniqueness string

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for Mailpit)
	MailSMTPPass string
	MailFrom     string // From email address (e.g., noreply@teamhub.local)
	MailFromName string // From display name

	// Base URL for confirmation links
	BaseURL  string // e.g., "https://teamhub.example.com" or "http://localhost:3000"
	SiteName string

	// Audit logging: "all", "db", "log", "off"
	AuditLogAuth  string
	AuditLogAdmin string

	// Operation timeouts
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutMail   time.Duration

	// First team bootstrap
	SeedTeamName      string
	SeedAdminEmail    string
	SeedAdminPassword string

	// Optional on-disk page shells
	PagesDir string
}
