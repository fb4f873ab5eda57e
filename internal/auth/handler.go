// Package auth serves the login and register screens and owns the token
// lifecycle around them.
package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/lacouro/loja-web/internal/api"
	"github.com/lacouro/loja-web/internal/session"
	"github.com/lacouro/loja-web/internal/view"
)

// Handler wires HTTP endpoints for authentication screens.
type Handler struct {
	logger    *slog.Logger
	auth      *api.AuthClient
	store     *session.Store
	templates *view.Engine
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, auth *api.AuthClient, store *session.Store, templates *view.Engine) *Handler {
	return &Handler{
		logger:    logger,
		auth:      auth,
		store:     store,
		templates: templates,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router. Credential
// submissions get a tighter rate limit than the rest of the site.
func (h *Handler) MountRoutes(r chi.Router) {
	limit := httprate.LimitByIP(10, time.Minute)
	r.Get("/login", h.showLogin)
	r.With(limit).Post("/login", h.handleLogin)
	r.Get("/register", h.showRegister)
	r.With(limit).Post("/register", h.handleRegister)
	r.Post("/logout", h.handleLogout)
}

type loginForm struct {
	Email string `validate:"required,email"`
	Senha string `validate:"required,min=4"`
}

type registerForm struct {
	Nome  string `validate:"required,min=3"`
	Email string `validate:"required,email"`
	Senha string `validate:"required,min=6"`
}

type loginPageData struct {
	Form   loginForm
	Notice string
	Errors map[string]string
}

type registerPageData struct {
	Form   registerForm
	Errors map[string]string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if h.store.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data := loginPageData{Errors: map[string]string{}}
	if r.URL.Query().Get("cadastro") == "ok" {
		data.Notice = "Conta criada com sucesso. Faça login para continuar."
	}
	h.render(w, "pages/login.html", view.TemplateData{Title: "Entrar", CurrentPath: r.URL.Path, Data: data})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := loginForm{
		Email: r.PostFormValue("email"),
		Senha: r.PostFormValue("senha"),
	}
	errors := map[string]string{}
	if err := h.validator.Struct(form); err != nil {
		errors["general"] = "Informe um e-mail válido e uma senha com pelo menos 4 caracteres."
	}

	if len(errors) == 0 {
		resp, err := h.auth.Login(r.Context(), api.LoginRequest{Email: form.Email, Senha: form.Senha})
		if err != nil {
			errors["general"] = api.Message(err, "Não foi possível fazer login.")
		} else if err := h.store.Save(r.Context(), resp.Token); err != nil {
			h.logger.Error("guardar token", slog.Any("error", err))
			errors["general"] = "Não foi possível iniciar a sessão."
		} else {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	h.render(w, "pages/login.html", view.TemplateData{
		Title:       "Entrar",
		CurrentPath: r.URL.Path,
		Data:        loginPageData{Form: form, Errors: errors},
	})
}

func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, "pages/register.html", view.TemplateData{
		Title:       "Criar conta",
		CurrentPath: r.URL.Path,
		Data:        registerPageData{Errors: map[string]string{}},
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := registerForm{
		Nome:  r.PostFormValue("nome"),
		Email: r.PostFormValue("email"),
		Senha: r.PostFormValue("senha"),
	}
	errors := map[string]string{}
	if err := h.validator.Struct(form); err != nil {
		errors["general"] = "Preencha nome (mín. 3), e-mail válido e senha (mín. 6)."
	}

	if len(errors) == 0 {
		_, err := h.auth.Register(r.Context(), api.RegisterRequest{Nome: form.Nome, Email: form.Email, Senha: form.Senha})
		if err != nil {
			errors["general"] = api.Message(err, "Não foi possível criar a conta.")
		} else {
			http.Redirect(w, r, "/login?cadastro=ok", http.StatusSeeOther)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	h.render(w, "pages/register.html", view.TemplateData{
		Title:       "Criar conta",
		CurrentPath: r.URL.Path,
		Data:        registerPageData{Form: form, Errors: errors},
	})
}

// handleLogout discards the token. Logging out twice is harmless.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		h.logger.Warn("limpar sessão", slog.Any("error", err))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, page string, data view.TemplateData) {
	if err := h.templates.Render(w, page, data); err != nil {
		h.logger.Error("render "+page, slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
