package auth_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacouro/loja-web/internal/api"
	"github.com/lacouro/loja-web/internal/auth"
	"github.com/lacouro/loja-web/internal/session"
	"github.com/lacouro/loja-web/internal/view"
)

func newHandler(t *testing.T, backend http.HandlerFunc) (*chi.Mux, *session.Store) {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	store := session.NewStore(session.NewMemoryStorage())
	client := api.NewClient(server.URL, 5*time.Second, store)
	templates, err := view.NewEngine()
	require.NoError(t, err)

	router := chi.NewRouter()
	auth.NewHandler(slog.Default(), api.NewAuthClient(client), store, templates).MountRoutes(router)
	return router, store
}

func loginForm(email, senha string) *strings.Reader {
	form := url.Values{}
	form.Set("email", email)
	form.Set("senha", senha)
	return strings.NewReader(form.Encode())
}

func TestLoginStoresTokenAndRedirects(t *testing.T) {
	router, store := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cliente@loja.dev", req.Email)
		_ = json.NewEncoder(w).Encode(api.LoginResponse{Token: "tok-abc"})
	})

	req := httptest.NewRequest(http.MethodPost, "/login", loginForm("cliente@loja.dev", "segredo"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/", res.Header().Get("Location"))

	token, ok := store.Read(context.Background())
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
}

func TestLoginSurfacesBackendMessage(t *testing.T) {
	router, store := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Credenciais inválidas."})
	})

	req := httptest.NewRequest(http.MethodPost, "/login", loginForm("cliente@loja.dev", "errada"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Credenciais inválidas.")

	_, ok := store.Read(context.Background())
	assert.False(t, ok, "failed login must not store a token")
}

func TestLoginRejectsInvalidFormWithoutBackendCall(t *testing.T) {
	called := false
	router, _ := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/login", loginForm("não-é-email", "abc"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.False(t, called)
}

func TestLogoutIsIdempotent(t *testing.T) {
	router, store := newHandler(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, store.Save(context.Background(), "tok"))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)
		assert.Equal(t, http.StatusSeeOther, res.Code)
		assert.Equal(t, "/login", res.Header().Get("Location"))

		_, ok := store.Read(context.Background())
		assert.False(t, ok)
	}
}
