package api

import (
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/anshul-dev/notesvault/internal/api/handlers"
	"github.com/anshul-dev/notesvault/internal/api/middleware"
	"github.com/anshul-dev/notesvault/internal/auth"
	"github.com/anshul-dev/notesvault/internal/config"
)

// SetupRouter wires every route behind its guard. Session resolution runs
// once per request, ahead of the guards; the guards never touch the body
// or the database.
func SetupRouter(h *handlers.Handler, codec *auth.SessionCodec, cfg config.Config) http.Handler {
	mux := http.NewServeMux()
	c := cors.New(cfg.CorsConfig)

	authed := middleware.RequireAuth
	guest := middleware.RequireGuest

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /logout", h.Logout)
	mux.HandleFunc("GET /viewpdf/{id}", h.ViewPDF)
	mux.HandleFunc("GET /download/{id}", h.DownloadPDF)

	// ---------- GUEST-ONLY ROUTES ----------
	mux.Handle("GET /signup", guest(http.HandlerFunc(h.SignupPage)))
	mux.Handle("POST /signup", guest(http.HandlerFunc(h.Signup)))
	mux.Handle("GET /login", guest(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /login", guest(http.HandlerFunc(h.Login)))
	mux.Handle("GET /auth/google/login", guest(http.HandlerFunc(h.GoogleLogin)))
	mux.HandleFunc("GET /auth/google/callback", h.GoogleCallback)

	// ---------- AUTHENTICATED ROUTES ----------
	mux.Handle("GET /user", authed(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /upload", authed(http.HandlerFunc(h.UploadPage)))
	mux.Handle("POST /upload", authed(http.HandlerFunc(h.Upload)))
	mux.Handle("GET /myuploads", authed(http.HandlerFunc(h.MyUploads)))
	mux.Handle("GET /delete/{id}", authed(http.HandlerFunc(h.DeleteNote)))
	mux.Handle("GET /edit/{id}", authed(http.HandlerFunc(h.EditNotePage)))
	mux.Handle("PUT /edit/{id}", authed(http.HandlerFunc(h.EditNote)))
	mux.Handle("POST /edit/{id}", authed(http.HandlerFunc(h.EditNote)))

	mux.Handle("GET /mynotes", authed(http.HandlerFunc(h.MyNotes)))
	mux.Handle("GET /mynotes/createpage", authed(http.HandlerFunc(h.CreateMyNotePage)))
	mux.Handle("POST /mynotes/create", authed(http.HandlerFunc(h.CreateMyNote)))
	mux.Handle("GET /mynotes/view/{id}", authed(http.HandlerFunc(h.ViewMyNote)))
	mux.Handle("GET /mynotes/edit/{id}", authed(http.HandlerFunc(h.EditMyNotePage)))
	mux.Handle("PUT /mynotes/edit/{id}", authed(http.HandlerFunc(h.EditMyNote)))
	mux.Handle("POST /mynotes/edit/{id}", authed(http.HandlerFunc(h.EditMyNote)))
	mux.Handle("GET /mynotes/delete/{id}", authed(http.HandlerFunc(h.DeleteMyNote)))

	log.Println("Router initialized")

	handler := middleware.ResolveSession(codec)(mux)
	handler = c.Handler(handler)
	handler = middleware.Logger(handler)
	return handler
}
