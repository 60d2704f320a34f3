package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/anshul-dev/notesvault/internal/api"
	"github.com/anshul-dev/notesvault/internal/api/handlers"
	"github.com/anshul-dev/notesvault/internal/api/services"
	"github.com/anshul-dev/notesvault/internal/auth"
	"github.com/anshul-dev/notesvault/internal/config"
	"github.com/anshul-dev/notesvault/internal/models"
	"github.com/anshul-dev/notesvault/internal/repositories"
	"github.com/anshul-dev/notesvault/internal/views"
)

// ---------- in-memory fakes ----------

type fakeUserStore struct {
	users   map[uuid.UUID]*models.User
	lookups int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = uuid.New()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.lookups++
	for _, u := range f.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.lookups++
	for _, u := range f.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.User, error) {
	f.lookups++
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakePublicNoteStore struct {
	notes map[uuid.UUID]*models.PublicNote
	lists int
}

func newFakePublicNoteStore() *fakePublicNoteStore {
	return &fakePublicNoteStore{notes: make(map[uuid.UUID]*models.PublicNote)}
}

func (f *fakePublicNoteStore) Create(_ context.Context, note *models.PublicNote) error {
	note.ID = uuid.New()
	note.UploadedAt = time.Now()
	stored := *note
	f.notes[note.ID] = &stored
	return nil
}

func (f *fakePublicNoteStore) ListAll(_ context.Context) ([]models.PublicNote, error) {
	f.lists++
	result := make([]models.PublicNote, 0, len(f.notes))
	for _, n := range f.notes {
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UploadedAt.After(result[j].UploadedAt) })
	return result, nil
}

func (f *fakePublicNoteStore) ListByUploader(_ context.Context, uploaderID uuid.UUID) ([]models.PublicNote, error) {
	var result []models.PublicNote
	for _, n := range f.notes {
		if n.UploaderID == uploaderID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UploadedAt.After(result[j].UploadedAt) })
	return result, nil
}

func (f *fakePublicNoteStore) FindByID(_ context.Context, id uuid.UUID) (*models.PublicNote, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *note
	return &result, nil
}

func (f *fakePublicNoteStore) UpdateMeta(_ context.Context, note *models.PublicNote) error {
	stored, ok := f.notes[note.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Title = note.Title
	stored.Subject = note.Subject
	stored.Description = note.Description
	return nil
}

func (f *fakePublicNoteStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.notes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.notes, id)
	return nil
}

type fakePrivateNoteStore struct {
	notes map[uuid.UUID]*models.PrivateNote
}

func newFakePrivateNoteStore() *fakePrivateNoteStore {
	return &fakePrivateNoteStore{notes: make(map[uuid.UUID]*models.PrivateNote)}
}

func (f *fakePrivateNoteStore) Create(_ context.Context, note *models.PrivateNote) error {
	note.ID = uuid.New()
	note.CreatedAt = time.Now()
	stored := *note
	f.notes[note.ID] = &stored
	return nil
}

func (f *fakePrivateNoteStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]models.PrivateNote, error) {
	var result []models.PrivateNote
	for _, n := range f.notes {
		if n.OwnerID == ownerID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *fakePrivateNoteStore) FindByOwnerAndID(_ context.Context, ownerID, id uuid.UUID) (*models.PrivateNote, error) {
	note, ok := f.notes[id]
	if !ok || note.OwnerID != ownerID {
		return nil, repositories.ErrNotFound
	}
	result := *note
	return &result, nil
}

func (f *fakePrivateNoteStore) Update(_ context.Context, ownerID, id uuid.UUID, title, content string) error {
	note, ok := f.notes[id]
	if !ok || note.OwnerID != ownerID {
		return repositories.ErrNotFound
	}
	note.Title = title
	note.Content = content
	return nil
}

func (f *fakePrivateNoteStore) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	note, ok := f.notes[id]
	if !ok || note.OwnerID != ownerID {
		return repositories.ErrNotFound
	}
	delete(f.notes, id)
	return nil
}

type fakeBlobStore struct {
	objects map[string][]byte
	nextKey int

	putErr    error
	getErr    error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, _ string, body io.Reader, _ int64) (string, string, error) {
	if f.putErr != nil {
		return "", "", f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", "", err
	}
	f.nextKey++
	key := fmt.Sprintf("public_notes/test-%d.pdf", f.nextKey)
	f.objects[key] = data
	return "https://blobs.test/" + key, key, nil
}

func (f *fakeBlobStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

// ---------- test environment ----------

type testEnv struct {
	router http.Handler
	codec  *auth.SessionCodec

	users        *fakeUserStore
	publicNotes  *fakePublicNoteStore
	privateNotes *fakePrivateNoteStore
	blobs        *fakeBlobStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	renderer, err := views.New("../../../web/templates")
	require.NoError(t, err)

	cfg := config.Config{
		Environment: "test",
		BaseURL:     "http://localhost:8080",
		CorsConfig:  config.CorsConfig(),
	}
	codec := auth.NewSessionCodec("test-secret")

	env := &testEnv{
		codec:        codec,
		users:        newFakeUserStore(),
		publicNotes:  newFakePublicNoteStore(),
		privateNotes: newFakePrivateNoteStore(),
		blobs:        newFakeBlobStore(),
	}

	h := handlers.New(
		env.users,
		env.publicNotes,
		env.privateNotes,
		env.blobs,
		codec,
		renderer,
		services.NewGoogleOauthConfig(cfg),
		cfg,
	)
	env.router = api.SetupRouter(h, codec, cfg)
	return env
}

// addUser puts a user straight into the store and returns it.
func (env *testEnv) addUser(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Username: username, Email: email, Password: hash}
	require.NoError(t, env.users.Create(context.Background(), user))
	return user
}

// sessionCookie returns a valid session cookie for the user.
func (env *testEnv) sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, _, err := env.codec.Issue(auth.Identity{UserID: user.ID, Username: user.Username})
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, target string, fields map[string]string, pdf []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("pdf", "notes.pdf")
	require.NoError(t, err)
	_, err = fw.Write(pdf)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
