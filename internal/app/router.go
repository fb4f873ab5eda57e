package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lacouro/loja-web/internal/admin"
	"github.com/lacouro/loja-web/internal/auth"
	"github.com/lacouro/loja-web/internal/guard"
	"github.com/lacouro/loja-web/internal/home"
	"github.com/lacouro/loja-web/internal/session"
	"github.com/lacouro/loja-web/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger       *slog.Logger
	Config       *Config
	Sessions     *session.Manager
	Store        *session.Store
	AuthHandler  *auth.Handler
	HomeHandler  *home.Handler
	AdminHandler *admin.Handler
}

// NewRouter constructs the chi.Router with Loja defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:   params.Logger,
		Config:   params.Config,
		Sessions: params.Sessions,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/static/*", http.FileServer(http.FS(web.Static)))

	params.AuthHandler.MountRoutes(r)

	// Storefront: any authenticated session may enter.
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(params.Store))
		params.HomeHandler.MountRoutes(r)
	})

	// Back office: ADMIN only. Everyone else is sent to the login screen,
	// the same as being logged out.
	r.Route("/admin", func(r chi.Router) {
		r.Use(guard.Require(params.Store, session.RoleAdmin))
		params.AdminHandler.MountRoutes(r)
	})

	return r
}
