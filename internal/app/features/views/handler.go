// internal/app/features/views/handler.go
package views

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/dalemusser/teamhub/internal/app/system/jsonio"
	"go.uber.org/zap"
)

//go:embed pages/*.html
var embedded embed.FS

// Page shell file names. The browser client renders each view from the API.
const (
	PageLogin       = "login.html"
	PageSelectTeams = "select-teams.html"
	PageEditTeam    = "edit-team.html"
	PageEditUser    = "edit-user.html"
)

type Handler struct {
	Pages fs.FS
	Log   *zap.Logger
}

// NewHandler serves the embedded shells, or those in dir when it is set.
func NewHandler(dir string, logger *zap.Logger) (*Handler, error) {
	var pages fs.FS
	if dir != "" {
		pages = os.DirFS(dir)
		logger.Info("serving page shells from disk", zap.String("dir", dir))
	} else {
		sub, err := fs.Sub(embedded, "pages")
		if err != nil {
			return nil, err
		}
		pages = sub
	}
	for _, name := range []string{PageLogin, PageSelectTeams, PageEditTeam, PageEditUser} {
		if _, err := fs.Stat(pages, name); err != nil {
			return nil, err
		}
	}
	return &Handler{Pages: pages, Log: logger}, nil
}

// Page returns a handler that writes one shell.
func (h *Handler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile(h.Pages, name)
		if err != nil {
			h.Log.Error("read page shell", zap.Error(err), zap.String("page", name))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(b)
	}
}

// NotFound sends unknown browser paths back to the root view. Unknown API
// paths get a JSON 404 instead so clients see a real error.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		jsonio.Message(w, http.StatusNotFound, "Not Found")
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
