// Package guard decides whether a navigation may proceed, from the current
// session and the roles a route declares.
package guard

import (
	"context"

	"github.com/lacouro/loja-web/internal/session"
)

// LoginPath is where denied navigations are sent. Missing a required role
// redirects to the same place as not being logged in at all; the UI does not
// distinguish the two cases.
const LoginPath = "/login"

// Decision is the outcome of a guard check: entry is either allowed or
// redirected elsewhere.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow permits the navigation.
func Allow() Decision { return Decision{Allowed: true} }

// Redirect denies the navigation and names the target to send the browser to.
func Redirect(path string) Decision { return Decision{RedirectTo: path} }

// Check evaluates the guard for a route requiring any of the given roles.
// An empty required list only demands authentication.
func Check(ctx context.Context, store *session.Store, required ...session.Role) Decision {
	if !store.IsAuthenticated(ctx) {
		return Redirect(LoginPath)
	}
	if len(required) == 0 {
		return Allow()
	}
	for _, role := range required {
		if store.HasRole(ctx, role) {
			return Allow()
		}
	}
	return Redirect(LoginPath)
}
