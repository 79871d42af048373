package http

import (
	"net/http"
	"strings"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/config"
)

const sessionCookie = "admin_session"

const (
	adminRoot  = "/admin"
	loginPage  = "/admin/login"
	loginAPI   = "/admin/api/login"
	apiPrefix  = "/admin/api/"
	feedSocket = "/admin/ws"
)

// AdminGate protects everything under /admin. The session is resolved
// against the auth service on every matched request; there is no token
// inspection and no per-request caching.
type AdminGate struct {
	auth *app.AuthService
	caps config.Capabilities
	// allowUnauthenticated is the single explicit switch for running the
	// dashboard without a configured auth backend (local development).
	allowUnauthenticated bool
}

func NewAdminGate(auth *app.AuthService, caps config.Capabilities, allowUnauthenticated bool) *AdminGate {
	return &AdminGate{auth: auth, caps: caps, allowUnauthenticated: allowUnauthenticated}
}

// Wrap applies the gate's redirect rules:
//   - unauthenticated on a protected path: redirect to the login page
//     (API and socket paths answer 401 instead, redirects confuse fetch).
//   - authenticated on the login page: redirect to the dashboard.
//   - everything else passes through.
func (g *AdminGate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if !g.caps.Auth {
			if g.allowUnauthenticated {
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, http.StatusServiceUnavailable, "admin access requires a configured auth backend")
			return
		}

		authed := false
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			_, authed = g.auth.Current(r.Context(), cookie.Value)
		}

		// The login page and its API stay reachable without a session.
		if path == loginPage || path == loginAPI {
			if authed && path == loginPage {
				http.Redirect(w, r, adminRoot, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if !authed {
			if strings.HasPrefix(path, apiPrefix) || path == feedSocket {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			http.Redirect(w, r, loginPage, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
