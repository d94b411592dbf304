// Package middleware carries the BFF's per-request plumbing, most
// importantly the access classifier that runs before any handler.
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"panda-gate/roles"
	"panda-gate/session"
)

type pathClass int

const (
	classPublic pathClass = iota
	classAuthPage
	classProtected
	classAdmin
	classSkipped
)

// LandingPath is where authenticated users land by default.
const LandingPath = "/dashboard"

var protectedPrefixes = []string{"/dashboard", "/services", "/notifications", "/settings", "/tokens"}

// skippedPrefixes are never classified: static assets, framework
// internals, and the BFF's own API routes, which answer with JSON
// envelopes instead of redirects. The pod enforces its own
// authorization regardless.
var skippedPrefixes = []string{"/api/", "/_next/", "/static/", "/assets/", "/favicon.ico", "/healthz"}

func classify(path string) pathClass {
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(path, p) {
			return classSkipped
		}
	}
	if path == "/login" || path == "/register" {
		return classAuthPage
	}
	if path == "/admin" || strings.HasPrefix(path, "/admin/") {
		return classAdmin
	}
	for _, p := range protectedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return classProtected
		}
	}
	return classPublic
}

// Access decides allow / redirect-to-login / redirect-to-forbidden for
// every page navigation. It only needs the verify capability.
type Access struct {
	Verifier session.Verifier
	Secure   bool
}

func (a *Access) Classify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		class := classify(r.URL.Path)
		if class == classSkipped {
			next.ServeHTTP(w, r)
			return
		}

		var claims *session.Claims
		if token := session.FromRequest(r); token != "" {
			claims = a.Verifier.Verify(token)
			if claims == nil {
				// stale or tampered cookie: treat as anonymous and drop it
				session.ClearCookie(w, a.Secure)
			}
		}

		switch {
		case claims == nil && (class == classProtected || class == classAdmin):
			http.Redirect(w, r, "/login?redirect="+url.QueryEscape(r.URL.Path), http.StatusFound)
		case claims != nil && class == classAuthPage:
			http.Redirect(w, r, LandingPath, http.StatusFound)
		case claims != nil && class == classAdmin && !roles.IsAdmin(claims.Role):
			// forbidden, not 404: the distinction matters for observability
			http.Redirect(w, r, LandingPath+"?error=forbidden", http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
