// internal/app/features/users/update.go
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"github.com/dalemusser/teamhub/internal/app/system/authutil"
	"github.com/dalemusser/teamhub/internal/app/system/jsonio"
	"github.com/dalemusser/teamhub/internal/app/system/normalize"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// userPatch lists every field a user may change about themself. Anything
// else in the body (team, confirmed, id) is rejected by the decoder.
// A field that is present must be non-empty; omitnil only skips absent ones.
type userPatch struct {
	FirstName *string `json:"firstName" validate:"omitnil,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitnil,min=1,max=100"`
	Email     *string `json:"email" validate:"omitnil,email,max=254"`
	Password  *string `json:"password"`
}

// errEmptyField is returned by apply when a provided value normalizes to "".
var errEmptyField = errors.New("field is empty")

// apply copies the provided fields onto u and returns their names.
func (p userPatch) apply(u *models.User) ([]string, error) {
	var changed []string
	if p.FirstName != nil {
		name := normalize.Name(*p.FirstName)
		if name == "" {
			return nil, errEmptyField
		}
		u.FirstName = name
		changed = append(changed, "firstName")
	}
	if p.LastName != nil {
		name := normalize.Name(*p.LastName)
		if name == "" {
			return nil, errEmptyField
		}
		u.LastName = name
		changed = append(changed, "lastName")
	}
	if p.Email != nil {
		u.Email = normalize.Email(*p.Email)
		changed = append(changed, "email")
	}
	if p.Password != nil {
		if err := authutil.ValidatePassword(*p.Password); err != nil {
			return nil, err
		}
		hash, err := authutil.HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
		changed = append(changed, "password")
	}
	return changed, nil
}

// HandleUpdate applies a profile patch. The session must hold the target
// user's id.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	teamHex := normalize.ID(chi.URLParam(r, "teamId"))
	userHex := normalize.ID(chi.URLParam(r, "userId"))

	if !auth.FromRequest(r).Contains(userHex) {
		jsonio.Message(w, http.StatusForbidden, msgNotSelf)
		return
	}

	var patch userPatch
	if err := jsonio.Decode(w, r, &patch); err != nil {
		h.Log.Debug("update user: bad body", zap.Error(err))
		jsonio.Message(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	userID, err := primitive.ObjectIDFromHex(userHex)
	if err != nil {
		jsonio.Message(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if errors.Is(err, userstore.ErrNotFound) || (err == nil && user.TeamID.Hex() != teamHex) {
		jsonio.Message(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	if err != nil {
		h.Log.Error("update user: load", zap.Error(err), zap.String("user_id", userHex))
		jsonio.Message(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}

	changed, err := patch.apply(user)
	if errors.Is(err, errEmptyField) ||
		errors.Is(err, authutil.ErrPasswordTooShort) ||
		errors.Is(err, authutil.ErrPasswordTooLong) {
		jsonio.Message(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err != nil {
		h.Log.Error("update user: apply patch", zap.Error(err), zap.String("user_id", userHex))
		jsonio.Message(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}

	if err := h.Users.Save(ctx, user); err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			jsonio.Message(w, http.StatusConflict, msgUserExists)
			return
		}
		if errors.Is(err, userstore.ErrNotFound) {
			jsonio.Message(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		h.Log.Error("update user: save", zap.Error(err), zap.String("user_id", userHex))
		jsonio.Message(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}

	h.AuditLog.UserUpdated(ctx, r, user.ID, user.TeamID, changed)

	jsonio.Write(w, http.StatusOK, msgUpdated, map[string]any{"user": user})
}
