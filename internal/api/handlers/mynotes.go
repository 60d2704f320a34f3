package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/anshul-dev/notesvault/internal/api/middleware"
	"github.com/anshul-dev/notesvault/internal/models"
	"github.com/anshul-dev/notesvault/internal/repositories"
)

type myNotesPage struct {
	Notes    []models.PrivateNote
	Username string
}

type myNotePage struct {
	Note     *models.PrivateNote
	Username string
}

// GET /mynotes
func (h *Handler) MyNotes(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	notes, err := h.privateNotes.ListByOwner(r.Context(), identity.UserID)
	if err != nil {
		log.Println("loading private notes failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error loading your notes.")
		return
	}
	h.views.Render(w, http.StatusOK, "mynotes.html", myNotesPage{Notes: notes, Username: identity.Username})
}

// GET /mynotes/createpage
func (h *Handler) CreateMyNotePage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "mynote_create.html", nil)
}

// POST /mynotes/create
func (h *Handler) CreateMyNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		h.views.Error(w, http.StatusBadRequest, "Error creating note.")
		return
	}

	note := models.PrivateNote{
		OwnerID: identity.UserID,
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}
	if note.Title == "" {
		h.views.Error(w, http.StatusBadRequest, "Title is required.")
		return
	}

	if err := h.privateNotes.Create(r.Context(), &note); err != nil {
		log.Println("creating private note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error creating note.")
		return
	}

	http.Redirect(w, r, "/mynotes", http.StatusSeeOther)
}

// GET /mynotes/view/{id}
// The compound (id, owner) lookup makes another user's note id look
// exactly like a missing one: not found, never forbidden.
func (h *Handler) ViewMyNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	note, err := h.privateNotes.FindByOwnerAndID(r.Context(), identity.UserID, id)
	if errors.Is(err, repositories.ErrNotFound) {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}
	if err != nil {
		log.Println("loading private note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error loading note.")
		return
	}

	h.views.Render(w, http.StatusOK, "mynote_view.html", myNotePage{Note: note, Username: identity.Username})
}

// GET /mynotes/edit/{id}
func (h *Handler) EditMyNotePage(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	note, err := h.privateNotes.FindByOwnerAndID(r.Context(), identity.UserID, id)
	if errors.Is(err, repositories.ErrNotFound) {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}
	if err != nil {
		log.Println("loading private note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error loading note.")
		return
	}

	h.views.Render(w, http.StatusOK, "mynote_edit.html", myNotePage{Note: note, Username: identity.Username})
}

// PUT /mynotes/edit/{id} (or POST with _method=PUT)
func (h *Handler) EditMyNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		h.views.Error(w, http.StatusBadRequest, "Edit failed.")
		return
	}
	if r.Method == http.MethodPost && r.PostFormValue("_method") != "PUT" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	err = h.privateNotes.Update(r.Context(), identity.UserID, id,
		r.PostFormValue("title"), r.PostFormValue("content"))
	if errors.Is(err, repositories.ErrNotFound) {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}
	if err != nil {
		log.Println("updating private note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Edit failed.")
		return
	}

	http.Redirect(w, r, "/mynotes", http.StatusSeeOther)
}

// GET /mynotes/delete/{id}
func (h *Handler) DeleteMyNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	err = h.privateNotes.Delete(r.Context(), identity.UserID, id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Println("deleting private note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error deleting note.")
		return
	}

	http.Redirect(w, r, "/mynotes", http.StatusSeeOther)
}
