package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/anshul-dev/notesvault/internal/auth"
	"github.com/anshul-dev/notesvault/internal/models"
	"github.com/anshul-dev/notesvault/internal/repositories"
)

type signupPage struct {
	DuplicateError string
}

type loginPage struct {
	Failed bool
}

// GET /signup
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "signup.html", signupPage{})
}

// POST /signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.views.Render(w, http.StatusBadRequest, "signup.html", signupPage{
			DuplicateError: "Error during signup. Please try again.",
		})
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if username == "" || email == "" || password == "" {
		h.views.Render(w, http.StatusBadRequest, "signup.html", signupPage{
			DuplicateError: "All fields are required.",
		})
		return
	}

	// Single existence query covering both unique fields; the answer only
	// decides which message the user sees. The unique indexes are what
	// actually prevent a duplicate slipping through a concurrent signup.
	existing, err := h.users.FindByUsernameOrEmail(r.Context(), username, email)
	switch {
	case err == nil:
		msg := "Email already registered!"
		if existing.Username == username {
			msg = "Username already exists!"
		}
		h.views.Render(w, http.StatusOK, "signup.html", signupPage{DuplicateError: msg})
		return
	case errors.Is(err, repositories.ErrNotFound):
		// new user
	default:
		log.Println("signup lookup failed:", err)
		h.views.Render(w, http.StatusInternalServerError, "signup.html", signupPage{
			DuplicateError: "Error during signup. Please try again.",
		})
		return
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Println("hashing password failed:", err)
		h.views.Render(w, http.StatusInternalServerError, "signup.html", signupPage{
			DuplicateError: "Error during signup. Please try again.",
		})
		return
	}

	newUser := models.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if err := h.users.Create(r.Context(), &newUser); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost the race against a concurrent signup; same outcome as
			// the pre-check, just without knowing which field collided.
			h.views.Render(w, http.StatusOK, "signup.html", signupPage{
				DuplicateError: "Username or email already registered!",
			})
			return
		}
		log.Println("creating user failed:", err)
		h.views.Render(w, http.StatusInternalServerError, "signup.html", signupPage{
			DuplicateError: "Error during signup. Please try again.",
		})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// GET /login
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "login.html", loginPage{
		Failed: r.URL.Query().Get("failed") != "",
	})
}

// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.views.Render(w, http.StatusBadRequest, "login.html", loginPage{Failed: true})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.users.FindByUsername(r.Context(), username)
	switch {
	case err == nil:
		// found
	case errors.Is(err, repositories.ErrNotFound):
		h.views.Render(w, http.StatusUnauthorized, "login.html", loginPage{Failed: true})
		return
	default:
		log.Println("login lookup failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	if !auth.CheckPassword(user.Password, password) {
		h.views.Render(w, http.StatusUnauthorized, "login.html", loginPage{Failed: true})
		return
	}

	identity := auth.Identity{UserID: user.ID, Username: user.Username}
	if err := h.setSessionCookie(w, identity); err != nil {
		log.Println("issuing session failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, "/user", http.StatusSeeOther)
}

// GET /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
