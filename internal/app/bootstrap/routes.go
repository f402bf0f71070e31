// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/teamhub/internal/app/features/health"
	usersfeature "github.com/dalemusser/teamhub/internal/app/features/users"
	viewsfeature "github.com/dalemusser/teamhub/internal/app/features/views"
	"github.com/dalemusser/teamhub/internal/app/store/audit"
	teamstore "github.com/dalemusser/teamhub/internal/app/store/teams"
	userstore "github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/auditlog"
	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"github.com/dalemusser/teamhub/internal/app/system/mailer"
	"github.com/dalemusser/teamhub/internal/app/system/metrics"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/app/system/tokens"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// TeamHub mounts the JSON API under /api, the client page shells at the
// root, and /health plus /metrics for operators.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	tokenSvc, err := tokens.New(appCfg.JWTSecret, appCfg.ConfirmTokenTTL)
	if err != nil {
		logger.Error("token service init failed", zap.Error(err))
		return nil, err
	}

	db := deps.TeamHubMongoDatabase
	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
		Timeout:  timeouts.Mail(),
	}, logger)
	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	m := metrics.New()

	viewsHandler, err := viewsfeature.NewHandler(appCfg.PagesDir, logger)
	if err != nil {
		logger.Error("page shells unavailable", zap.Error(err), zap.String("pages_dir", appCfg.PagesDir))
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(m.Middleware)
	// Loads the session's authenticated user ids into every request.
	r.Use(sessionMgr.LoadAuthContext)
	r.NotFound(viewsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.TeamHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", m.Handler())

	// Static assets for the page shells
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// JSON API
	usersHandler := usersfeature.NewHandler(userstore.New(db), teamstore.New(db), mail, tokenSvc, sessionMgr, logger)
	usersHandler.AuditLog = auditLog
	usersHandler.Metrics = m
	usersHandler.BaseURL = appCfg.BaseURL
	if appCfg.SiteName != "" {
		usersHandler.SiteName = appCfg.SiteName
	}
	r.Mount("/api", usersfeature.Routes(usersHandler))

	// Client views
	r.Mount("/", viewsfeature.Routes(viewsHandler))

	return r, nil
}
