// internal/app/features/users/create.go
package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	teamstore "github.com/dalemusser/teamhub/internal/app/store/teams"
	userstore "github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"github.com/dalemusser/teamhub/internal/app/system/authutil"
	"github.com/dalemusser/teamhub/internal/app/system/jsonio"
	"github.com/dalemusser/teamhub/internal/app/system/mailer"
	"github.com/dalemusser/teamhub/internal/app/system/normalize"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
}

// HandleCreate invites a new user to a team. Only a session holding one of
// the team's admins may invite.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	teamID, err := primitive.ObjectIDFromHex(normalize.ID(chi.URLParam(r, "teamId")))
	if err != nil {
		jsonio.Message(w, http.StatusNotFound, msgTeamNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := h.Teams.GetByID(ctx, teamID)
	if errors.Is(err, teamstore.ErrNotFound) {
		jsonio.Message(w, http.StatusNotFound, msgTeamNotFound)
		return
	}
	if err != nil {
		h.Log.Error("create user: load team", zap.Error(err), zap.String("team_id", teamID.Hex()))
		jsonio.Message(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}

	actorID, isAdmin := team.FirstAdmin(auth.FromRequest(r).IDs())
	if !isAdmin {
		h.AuditLog.InviteDenied(ctx, r, teamID)
		h.Metrics.Invitation("denied")
		jsonio.Message(w, http.StatusForbidden, msgNotTeamAdmin)
		return
	}

	var req createRequest
	if err := jsonio.Decode(w, r, &req); err != nil {
		h.Log.Debug("create user: bad body", zap.Error(err))
		jsonio.Message(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	tempPassword := authutil.GenerateTempPassword()
	hash, err := authutil.HashPassword(tempPassword)
	if err != nil {
		h.Log.Error("create user: hash temp password", zap.Error(err))
		jsonio.Message(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}

	user, err := h.Users.Create(ctx, models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		TeamID:       teamID,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		h.Metrics.Invitation("duplicate")
		jsonio.Message(w, http.StatusConflict, msgUserExists)
		return
	}
	if err != nil {
		h.Log.Error("create user: insert", zap.Error(err), zap.String("team_id", teamID.Hex()))
		jsonio.Message(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}

	if err := h.Teams.AddMember(ctx, teamID, user.ID); err != nil {
		h.Log.Error("create user: add team member", zap.Error(err),
			zap.String("team_id", teamID.Hex()), zap.String("user_id", user.ID.Hex()))
		jsonio.Message(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}

	h.AuditLog.UserInvited(ctx, r, user.ID, teamID, &actorID, user.Email)

	if err := h.sendInvitation(r.Context(), team, user, tempPassword); err != nil {
		// The user document stays; an admin can re-invite once delivery works.
		h.Log.Error("create user: send invitation", zap.Error(err),
			zap.String("user_id", user.ID.Hex()), zap.String("email", user.Email))
		h.AuditLog.InvitationEmailed(ctx, r, user.ID, teamID, err)
		h.Metrics.Invitation("mail_failed")
		jsonio.Message(w, http.StatusInternalServerError, msgInviteSendFailed)
		return
	}
	h.AuditLog.InvitationEmailed(ctx, r, user.ID, teamID, nil)
	h.Metrics.Invitation("sent")

	h.Log.Info("user invited",
		zap.String("user_id", user.ID.Hex()),
		zap.String("team_id", teamID.Hex()))

	jsonio.Write(w, http.StatusOK, msgCreated, map[string]string{"userId": user.ID.Hex()})
}

func (h *Handler) sendInvitation(parent context.Context, team models.Team, user models.User, tempPassword string) error {
	token, err := h.Tokens.Issue(user.ID.Hex(), team.ID.Hex())
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	ctx, cancel := timeouts.WithTimeout(parent, timeouts.Mail(), h.Log, "send invitation")
	defer cancel()

	email := mailer.BuildInvitationEmail(mailer.InvitationEmailData{
		SiteName:     h.SiteName,
		TeamName:     team.Name,
		FirstName:    user.FirstName,
		FullName:     user.FullName(),
		Email:        user.Email,
		TempPassword: tempPassword,
		ConfirmLink:  h.confirmLink(user.ID, token),
		ExpiresIn:    humanDuration(h.Tokens.TTL()),
	})
	return h.Mail.Send(ctx, email)
}

func (h *Handler) confirmLink(userID primitive.ObjectID, token string) string {
	return fmt.Sprintf("%s/api/users/%s/confirmation?token=%s",
		strings.TrimRight(h.BaseURL, "/"), userID.Hex(), url.QueryEscape(token))
}
