package guard

import (
	"net/http"

	"github.com/lacouro/loja-web/internal/session"
)

// Require wraps handlers behind a guard check. The check runs once per
// request before the handler is entered.
func Require(store *session.Store, required ...session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := Check(r.Context(), store, required...)
			if !decision.Allowed {
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
