// Package handlers holds the route bodies. Each handler resolves the
// request identity from context (the guard layer has already run), talks
// to the stores, and either renders a page or redirects.
package handlers

import (
	"net/http"

	"golang.org/x/oauth2"

	"github.com/anshul-dev/notesvault/internal/auth"
	"github.com/anshul-dev/notesvault/internal/config"
	"github.com/anshul-dev/notesvault/internal/repositories"
	"github.com/anshul-dev/notesvault/internal/views"
)

type Handler struct {
	users        repositories.UserStore
	publicNotes  repositories.PublicNoteStore
	privateNotes repositories.PrivateNoteStore
	blobs        repositories.BlobStore
	sessions     *auth.SessionCodec
	views        *views.Renderer
	oauth        *oauth2.Config
	env          string
}

func New(
	users repositories.UserStore,
	publicNotes repositories.PublicNoteStore,
	privateNotes repositories.PrivateNoteStore,
	blobs repositories.BlobStore,
	sessions *auth.SessionCodec,
	renderer *views.Renderer,
	oauth *oauth2.Config,
	cfg config.Config,
) *Handler {
	return &Handler{
		users:        users,
		publicNotes:  publicNotes,
		privateNotes: privateNotes,
		blobs:        blobs,
		sessions:     sessions,
		views:        renderer,
		oauth:        oauth,
		env:          cfg.Environment,
	}
}

// setSessionCookie issues a session token for the identity and writes the
// HttpOnly cookie. The payload is the minimal identity reference only.
func (h *Handler) setSessionCookie(w http.ResponseWriter, identity auth.Identity) error {
	token, expiration, err := h.sessions.Issue(identity)
	if err != nil {
		return err
	}

	isProd := h.env == "production"
	sameSite := http.SameSiteLaxMode
	if isProd {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiration,
		Secure:   isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})
	return nil
}

// clearSessionCookie deletes the session cookie regardless of prior state.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   h.env == "production",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
