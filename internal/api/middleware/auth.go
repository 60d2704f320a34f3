package middleware

import (
	"context"
	"net/http"

	"github.com/anshul-dev/notesvault/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// ResolveSession decodes the session cookie, if present, into an optional
// identity on the request context. It runs on every request ahead of the
// guards, so a handler never touches the cookie or the codec itself.
// An invalid or expired token is treated the same as no token.
func ResolveSession(codec *auth.SessionCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := codec.Decode(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the authenticated identity resolved for this
// request, if any.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}

// RequireAuth short-circuits unauthenticated requests with a redirect to
// the login page, before any body read or database call.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireGuest short-circuits authenticated requests with a redirect to
// the dashboard, so a signed-in user cannot re-submit signup or login.
func RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); ok {
			http.Redirect(w, r, "/user", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
