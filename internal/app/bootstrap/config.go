// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	userstore "github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/app/system/tokens"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for TeamHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: TEAMHUB_MONGO_URI, TEAMHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "teamhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Sessions
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "teamhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "336h", Desc: "Session cookie lifetime"},

	// Confirmation tokens
	{Name: "jwt_secret", Default: "", Desc: "HMAC secret for confirmation tokens (required)"},
	{Name: "confirm_token_ttl", Default: "72h", Desc: "Confirmation link lifetime"},

	// Users
	{Name: "email_uniqueness", Default: "none", Desc: "Email uniqueness: 'none', 'team' (per team) or 'global'"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@teamhub.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "TeamHub", Desc: "From display name"},

	// Base URL for confirmation links
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links"},
	{Name: "site_name", Default: "TeamHub", Desc: "Site name shown in emails"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Operation timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health check ping timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-document store operation timeout"},
	{Name: "timeout_medium", Default: "10s", Desc: "Multi-step store operation timeout"},
	{Name: "timeout_mail", Default: "15s", Desc: "SMTP delivery timeout"},

	// First team bootstrap
	{Name: "seed_team_name", Default: "", Desc: "Team created on startup if missing"},
	{Name: "seed_admin_email", Default: "", Desc: "Admin of the seed team (created if missing)"},
	{Name: "seed_admin_password", Default: "", Desc: "Password for a newly created seed admin"},

	// Views
	{Name: "pages_dir", Default: "", Desc: "Directory of page shells overriding the embedded ones"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TEAMHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TEAMHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 14*24*time.Hour),

		JWTSecret:       appValues.String("jwt_secret"),
		ConfirmTokenTTL: appValues.Duration("confirm_token_ttl", tokens.DefaultTTL),

		EmailUniqueness: appValues.String("email_uniqueness"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL:  appValues.String("base_url"),
		SiteName: appValues.String("site_name"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		TimeoutPing:   appValues.Duration("timeout_ping", 2*time.Second),
		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutMail:   appValues.Duration("timeout_mail", 15*time.Second),

		SeedTeamName:      appValues.String("seed_team_name"),
		SeedAdminEmail:    appValues.String("seed_admin_email"),
		SeedAdminPassword: appValues.String("seed_admin_password"),

		PagesDir: appValues.String("pages_dir"),
	}

	// Applied here so ConnectDB and EnsureSchema already see them.
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Mail:   appCfg.TimeoutMail,
	})

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// TeamHub validates the MongoDB URI format to catch configuration errors
// early, and refuses to start without a token secret.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateAppConfig(coreCfg.Env, appCfg)
}

// validateAppConfig holds the checks that do not need WAFFLE core config.
func validateAppConfig(env string, appCfg AppConfig) error {
	if appCfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if env == "prod" && len(appCfg.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters in prod")
	}
	if !userstore.ValidUniqueness(appCfg.EmailUniqueness) {
		return fmt.Errorf("email_uniqueness must be 'none', 'team' or 'global', got %q", appCfg.EmailUniqueness)
	}
	for name, v := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		switch v {
		case "all", "db", "log", "off":
		default:
			return fmt.Errorf("%s must be 'all', 'db', 'log' or 'off', got %q", name, v)
		}
	}
	if appCfg.SeedAdminEmail != "" && appCfg.SeedTeamName == "" {
		return fmt.Errorf("seed_admin_email requires seed_team_name")
	}
	return nil
}
