package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/anshul-dev/notesvault/internal/auth"
	"github.com/anshul-dev/notesvault/internal/models"
	"github.com/anshul-dev/notesvault/internal/repositories"
)

// GET /auth/google/login?redirect=login|register
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	flow := r.URL.Query().Get("redirect")
	if flow != "register" {
		flow = "login"
	}

	state, err := GenerateState(map[string]string{"flow": flow})
	if err != nil {
		log.Println("generating oauth state failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Failed to start Google sign-in.")
		return
	}

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /auth/google/callback
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateData, err := DecodeState(r.FormValue("state"))
	if err != nil {
		h.views.Error(w, http.StatusBadRequest, "Invalid OAuth state.")
		return
	}
	flow := stateData["flow"]

	token, err := h.oauth.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Println("oauth code exchange failed:", err)
		h.views.Error(w, http.StatusBadGateway, "Google sign-in failed.")
		return
	}

	client := h.oauth.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		log.Println("fetching google userinfo failed:", err)
		h.views.Error(w, http.StatusBadGateway, "Google sign-in failed.")
		return
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &googleUser); err != nil || googleUser.Email == "" {
		h.views.Error(w, http.StatusBadGateway, "Google sign-in failed.")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), googleUser.Email)

	switch flow {
	case "register":
		if err == nil {
			http.Redirect(w, r, "/login?failed=exists", http.StatusSeeOther)
			return
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Println("google register lookup failed:", err)
			h.views.Error(w, http.StatusInternalServerError, "Google sign-in failed.")
			return
		}
		newUser := models.User{
			Username: googleUser.Name,
			Email:    googleUser.Email,
			Password: "", // Google-authenticated
		}
		if err := h.users.Create(r.Context(), &newUser); err != nil {
			log.Println("creating google user failed:", err)
			h.views.Error(w, http.StatusInternalServerError, "Google sign-in failed.")
			return
		}
		user = &newUser

	default: // login
		if errors.Is(err, repositories.ErrNotFound) {
			http.Redirect(w, r, "/signup", http.StatusSeeOther)
			return
		}
		if err != nil {
			log.Println("google login lookup failed:", err)
			h.views.Error(w, http.StatusInternalServerError, "Google sign-in failed.")
			return
		}
	}

	identity := auth.Identity{UserID: user.ID, Username: user.Username}
	if err := h.setSessionCookie(w, identity); err != nil {
		log.Println("issuing session failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Google sign-in failed.")
		return
	}

	http.Redirect(w, r, "/user", http.StatusSeeOther)
}
