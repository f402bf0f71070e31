// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for login and confirmation events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for invitations and profile updates.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Sink is where events are persisted. *audit.Store satisfies it.
type Sink interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger records audit events to a Sink and to zap.
type Logger struct {
	store  Sink
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store Sink, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// clientIP extracts the client IP from the request.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.TeamID != nil {
		fields = append(fields, zap.String("team_id", event.TeamID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op so tests can leave it unset.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}
	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func oid(hex string) *primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &id
}

// --- Authentication Events ---

// LoginSuccess logs a successful team login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, teamID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		TeamID:    &teamID,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// LoginFailed logs a rejected login. teamIDHex may be malformed.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, teamIDHex, email string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		TeamID:        oid(teamIDHex),
		IP:            clientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "invalid credentials",
		Details:       map[string]string{"attempted_email": email},
	})
}

// UserConfirmed logs a completed invitation confirmation.
func (l *Logger) UserConfirmed(ctx context.Context, r *http.Request, userID, teamID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventUserConfirmed,
		UserID:    &userID,
		TeamID:    &teamID,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// ConfirmTokenFailed logs a rejected confirmation link.
func (l *Logger) ConfirmTokenFailed(ctx context.Context, r *http.Request, userIDHex string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventConfirmTokenFails,
		UserID:        oid(userIDHex),
		IP:            clientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "invalid or mismatched token",
	})
}

// --- Admin Events ---

// UserInvited logs a new user created by invitation. actorIDs are the
// session's authenticated ids; the first admin among them is recorded.
func (l *Logger) UserInvited(ctx context.Context, r *http.Request, userID, teamID primitive.ObjectID, actorID *primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserInvited,
		UserID:    &userID,
		TeamID:    &teamID,
		ActorID:   actorID,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// InviteDenied logs an invitation attempt by a session without an admin.
func (l *Logger) InviteDenied(ctx context.Context, r *http.Request, teamID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAdmin,
		EventType:     audit.EventInviteDenied,
		TeamID:        &teamID,
		IP:            clientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "session has no team admin",
	})
}

// InvitationEmailed logs the outcome of delivering an invitation.
func (l *Logger) InvitationEmailed(ctx context.Context, r *http.Request, userID, teamID primitive.ObjectID, sendErr error) {
	e := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventInvitationEmailed,
		UserID:    &userID,
		TeamID:    &teamID,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   sendErr == nil,
	}
	if sendErr != nil {
		e.FailureReason = sendErr.Error()
	}
	l.Log(ctx, e)
}

// UserUpdated logs a profile update and the fields it touched.
func (l *Logger) UserUpdated(ctx context.Context, r *http.Request, userID, teamID primitive.ObjectID, fields []string) {
	details := make(map[string]string, len(fields))
	for _, f := range fields {
		details[f] = "changed"
	}
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserUpdated,
		UserID:    &userID,
		TeamID:    &teamID,
		ActorID:   &userID,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}
