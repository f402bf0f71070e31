// internal/app/features/users/handler.go
package users

import (
	"context"
	"time"

	"github.com/dalemusser/teamhub/internal/app/system/auditlog"
	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"github.com/dalemusser/teamhub/internal/app/system/mailer"
	"github.com/dalemusser/teamhub/internal/app/system/metrics"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserStore is the subset of userstore.Store the handlers use.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Authenticate(ctx context.Context, teamID primitive.ObjectID, email, password string) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
}

// TeamStore is the subset of teamstore.Store the handlers use.
type TeamStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error)
	AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error
}

// Sender delivers email. *mailer.Mailer satisfies it.
type Sender interface {
	Send(ctx context.Context, e mailer.Email) error
}

// Tokens issues and verifies confirmation tokens. *tokens.Service satisfies it.
type Tokens interface {
	Issue(userID, teamID string) (string, error)
	Verify(token string) (string, error)
	TTL() time.Duration
}

type Handler struct {
	Users      UserStore
	Teams      TeamStore
	Mail       Sender
	Tokens     Tokens
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger // optional
	Metrics    *metrics.Metrics // optional
	Log        *zap.Logger

	BaseURL  string // prefix for confirmation links, e.g. "https://teamhub.example.com"
	SiteName string // shown in invitation emails
}

func NewHandler(users UserStore, teams TeamStore, mail Sender, tok Tokens, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		Teams:      teams,
		Mail:       mail,
		Tokens:     tok,
		SessionMgr: sessionMgr,
		Log:        logger,
		SiteName:   "TeamHub",
	}
}
