// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes mounts the user access API. The caller mounts it under /api and
// must run SessionManager.LoadAuthContext ahead of it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/teams/{teamId}/users", h.HandleCreate)
	r.Post("/teams/{teamId}/sessions", h.HandleLogin)
	r.Get("/users/{userId}/confirmation", h.HandleConfirm)
	r.Patch("/teams/{teamId}/users/{userId}", h.HandleUpdate)
	r.Put("/teams/{teamId}/users/{userId}", h.HandleUpdate)
	return r
}
