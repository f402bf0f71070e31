// internal/app/features/users/confirm.go
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

// HandleConfirm completes an invitation from the emailed link: it marks the
// user confirmed, signs them in to this browser session and redirects to /.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	userHex := normalize.ID(chi.URLParam(r, "userId"))
	token := r.URL.Query().Get("token")

	subject, err := h.Tokens.Verify(token)
	if err != nil || subject != userHex {
		h.Log.Debug("confirm: token rejected", zap.Error(err), zap.String("user_id", userHex))
		h.AuditLog.ConfirmTokenFailed(r.Context(), r, userHex)
		h.Metrics.Confirmation("bad_token")
		jsonio.Message(w, http.StatusForbidden, msgBadToken)
		return
	}

	userID, err := primitive.ObjectIDFromHex(userHex)
	if err != nil {
		jsonio.Message(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if errors.Is(err, userstore.ErrNotFound) {
		h.Metrics.Confirmation("not_found")
		jsonio.Message(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	if err != nil {
		h.Log.Error("confirm: load user", zap.Error(err), zap.String("user_id", userHex))
		jsonio.Message(w, http.StatusInternalServerError, msgConfirmFailed)
		return
	}

	user.Confirmed = true
	if err := h.Users.Save(ctx, user); err != nil {
		h.Log.Error("confirm: save user", zap.Error(err), zap.String("user_id", userHex))
		jsonio.Message(w, http.StatusInternalServerError, msgConfirmFailed)
		return
	}

	ac := auth.FromRequest(r)
	ac.Add(userHex)
	if err := h.SessionMgr.Save(w, r, ac); err != nil {
		h.Log.Error("confirm: save session", zap.Error(err), zap.String("user_id", userHex))
		jsonio.Message(w, http.StatusInternalServerError, msgConfirmFailed)
		return
	}

	h.AuditLog.UserConfirmed(ctx, r, user.ID, user.TeamID)
	h.Metrics.Confirmation("ok")

	http.Redirect(w, r, "/", http.StatusFound)
}
