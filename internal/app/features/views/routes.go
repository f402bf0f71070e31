// internal/app/features/views/routes.go
package views

import "github.com/go-chi/chi/v5"

// Routes maps the client view paths to their page shells.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Page(PageLogin))
	r.Get("/select-teams", h.Page(PageSelectTeams))
	r.Get("/edit-team/{teamId}", h.Page(PageEditTeam))
	r.Get("/edit-user/{userId}", h.Page(PageEditUser))
	r.NotFound(h.NotFound)
	return r
}
