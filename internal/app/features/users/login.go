// internal/app/features/users/login.go
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"github.com/dalemusser/teamhub/internal/app/system/jsonio"
	"github.com/dalemusser/teamhub/internal/app/system/normalize"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates against one team and adds the user to the
// session. Ids from other teams already in the session are kept.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	teamHex := normalize.ID(chi.URLParam(r, "teamId"))

	var req loginRequest
	if err := jsonio.Decode(w, r, &req); err != nil {
		h.loginFailed(w, r, teamHex, "")
		return
	}

	teamID, err := primitive.ObjectIDFromHex(teamHex)
	if err != nil {
		h.loginFailed(w, r, teamHex, req.Email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Authenticate(ctx, teamID, req.Email, req.Password)
	if errors.Is(err, userstore.ErrInvalidCredentials) {
		h.loginFailed(w, r, teamHex, req.Email)
		return
	}
	if err != nil {
		h.Log.Error("login: authenticate", zap.Error(err), zap.String("team_id", teamHex))
		h.Metrics.Login("error")
		jsonio.Message(w, http.StatusInternalServerError, msgLoginFailed)
		return
	}

	ac := auth.FromRequest(r)
	ac.Add(user.ID.Hex())
	if err := h.SessionMgr.Save(w, r, ac); err != nil {
		h.Log.Error("login: save session", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		h.Metrics.Login("error")
		jsonio.Message(w, http.StatusInternalServerError, msgLoginFailed)
		return
	}

	h.AuditLog.LoginSuccess(ctx, r, user.ID, teamID, user.Email)
	h.Metrics.Login("ok")

	jsonio.Write(w, http.StatusOK, msgLoggedIn, map[string]string{"userId": user.ID.Hex()})
}

func (h *Handler) loginFailed(w http.ResponseWriter, r *http.Request, teamHex, email string) {
	h.AuditLog.LoginFailed(r.Context(), r, teamHex, normalize.Email(email))
	h.Metrics.Login("failed")
	jsonio.Message(w, http.StatusBadRequest, msgLoginFailed)
}
