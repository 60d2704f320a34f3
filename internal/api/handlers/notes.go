package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/anshul-dev/notesvault/internal/api/middleware"
	"github.com/anshul-dev/notesvault/internal/models"
	"github.com/anshul-dev/notesvault/internal/repositories"
)

const maxUploadSize = 25 << 20 // 25 MB

type notesPage struct {
	Notes    []models.PublicNote
	Username string
}

type uploadPage struct {
	Error string
}

type editNotePage struct {
	Note     *models.PublicNote
	Username string
}

// GET /
// Anonymous landing page: all public notes, newest first. Authenticated
// users go straight to the dashboard.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.IdentityFrom(r.Context()); ok {
		http.Redirect(w, r, "/user", http.StatusSeeOther)
		return
	}

	notes, err := h.publicNotes.ListAll(r.Context())
	if err != nil {
		log.Println("loading public notes failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error loading home page.")
		return
	}
	h.views.Render(w, http.StatusOK, "home.html", notesPage{Notes: notes})
}

// GET /user
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	notes, err := h.publicNotes.ListAll(r.Context())
	if err != nil {
		log.Println("loading dashboard failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error loading user dashboard.")
		return
	}
	h.views.Render(w, http.StatusOK, "user.html", notesPage{Notes: notes, Username: identity.Username})
}

// GET /upload
func (h *Handler) UploadPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "upload.html", uploadPage{})
}

// POST /upload
// Blob first, record second: the metadata row is only written after the
// object store confirms the payload. A failure between the two steps
// leaves an unreferenced blob, never a record with a broken link.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.views.Render(w, http.StatusBadRequest, "upload.html", uploadPage{
			Error: "Invalid upload form.",
		})
		return
	}

	title := r.PostFormValue("title")
	subject := r.PostFormValue("subject")
	description := r.PostFormValue("description")
	if title == "" || subject == "" {
		h.views.Render(w, http.StatusBadRequest, "upload.html", uploadPage{
			Error: "Title and subject are required.",
		})
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		h.views.Render(w, http.StatusBadRequest, "upload.html", uploadPage{
			Error: "No file uploaded.",
		})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		h.views.Render(w, http.StatusBadRequest, "upload.html", uploadPage{
			Error: "File exceeds the 25 MB limit.",
		})
		return
	}

	url, key, err := h.blobs.Put(r.Context(), "application/pdf", file, header.Size)
	if err != nil {
		log.Println("upload to object store failed:", err)
		h.views.Render(w, http.StatusBadGateway, "upload.html", uploadPage{
			Error: "Upload failed. Please try again.",
		})
		return
	}

	note := models.PublicNote{
		Title:       title,
		Subject:     subject,
		Description: description,
		PDFURL:      url,
		PDFKey:      key,
		UploaderID:  identity.UserID,
		UploadedBy:  identity.Username,
	}
	if err := h.publicNotes.Create(r.Context(), &note); err != nil {
		// The blob is already committed; losing it here is the accepted
		// orphan-blob leak. No record points at it.
		log.Printf("saving note record failed (orphan blob %s): %v", key, err)
		h.views.Render(w, http.StatusInternalServerError, "upload.html", uploadPage{
			Error: "Upload failed. Please try again.",
		})
		return
	}

	http.Redirect(w, r, "/myuploads", http.StatusSeeOther)
}

// GET /viewpdf/{id}
func (h *Handler) ViewPDF(w http.ResponseWriter, r *http.Request) {
	h.servePDF(w, r, false)
}

// GET /download/{id}
func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	h.servePDF(w, r, true)
}

// servePDF proxies the backing blob for a public note. Public notes are
// public: no ownership check, but a missing record is a 404, not a crash.
func (h *Handler) servePDF(w http.ResponseWriter, r *http.Request, attachment bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	note, err := h.publicNotes.FindByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}
	if err != nil {
		log.Println("loading note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Failed to load PDF document.")
		return
	}

	body, err := h.blobs.Get(r.Context(), note.PDFKey)
	if err != nil {
		log.Println("fetching blob failed:", err)
		h.views.Error(w, http.StatusBadGateway, "Failed to load PDF document.")
		return
	}
	defer body.Close()

	disposition := "inline; filename=document.pdf"
	if attachment {
		disposition = fmt.Sprintf("attachment; filename=%q", downloadName(*note))
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", disposition)
	if _, err := io.Copy(w, body); err != nil {
		// Headers are gone; nothing left to do but log.
		log.Println("streaming blob failed:", err)
	}
}

// GET /myuploads
// Filtered by the stable uploader id, not the denormalized username.
func (h *Handler) MyUploads(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	notes, err := h.publicNotes.ListByUploader(r.Context(), identity.UserID)
	if err != nil {
		log.Println("loading user uploads failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error loading your uploads.")
		return
	}
	h.views.Render(w, http.StatusOK, "myuploads.html", notesPage{Notes: notes, Username: identity.Username})
}

// GET /delete/{id}
// Authentication and ownership are enforced here exactly as on edit.
// Blob deletion strictly precedes record deletion; if the blob delete
// fails the record survives, so no record ever points at missing data.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	note, err := h.publicNotes.FindByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}
	if err != nil {
		log.Println("loading note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error deleting note.")
		return
	}

	if note.UploaderID != identity.UserID {
		h.views.Error(w, http.StatusForbidden, "Unauthorized access.")
		return
	}

	if err := h.blobs.Delete(r.Context(), note.PDFKey); err != nil {
		log.Println("deleting blob failed:", err)
		h.views.Error(w, http.StatusBadGateway, "Error deleting note.")
		return
	}

	if err := h.publicNotes.Delete(r.Context(), id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Println("deleting note record failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error deleting note.")
		return
	}

	http.Redirect(w, r, "/myuploads", http.StatusSeeOther)
}

// GET /edit/{id}
func (h *Handler) EditNotePage(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}

	note, err := h.publicNotes.FindByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}
	if err != nil {
		log.Println("loading note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Error loading edit page.")
		return
	}

	if note.UploaderID != identity.UserID {
		h.views.Error(w, http.StatusForbidden, "Unauthorized access.")
		return
	}

	h.views.Render(w, http.StatusOK, "edit.html", editNotePage{Note: note, Username: identity.Username})
}

// PUT /edit/{id} (or POST with _method=PUT from the HTML form)
// Only title, subject and description are mutable; the blob reference
// never changes after create. A non-owner mutates nothing.
func (h *Handler) EditNote(w http.ResponseWriter, r *http.Request) {
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

	note, err := h.publicNotes.FindByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		h.views.Error(w, http.StatusNotFound, "Note not found.")
		return
	}
	if err != nil {
		log.Println("loading note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Edit failed.")
		return
	}

	if note.UploaderID != identity.UserID {
		h.views.Error(w, http.StatusForbidden, "Unauthorized access.")
		return
	}

	title := r.PostFormValue("title")
	subject := r.PostFormValue("subject")
	if title == "" || subject == "" {
		h.views.Render(w, http.StatusBadRequest, "edit.html", editNotePage{
			Note:     note,
			Username: identity.Username,
		})
		return
	}

	note.Title = title
	note.Subject = subject
	note.Description = r.PostFormValue("description")
	if err := h.publicNotes.UpdateMeta(r.Context(), note); err != nil {
		log.Println("updating note failed:", err)
		h.views.Error(w, http.StatusInternalServerError, "Edit failed.")
		return
	}

	http.Redirect(w, r, "/myuploads", http.StatusSeeOther)
}

func downloadName(note models.PublicNote) string {
	return fmt.Sprintf("%s.pdf", note.Title)
}
