package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/taxfolio/backend/internal/auth"
	"github.com/taxfolio/backend/internal/config"
	"github.com/taxfolio/backend/internal/handlers"
	"github.com/taxfolio/backend/internal/models"
	"github.com/taxfolio/backend/internal/routes"
	"github.com/taxfolio/backend/internal/services"
	"github.com/taxfolio/backend/internal/storage"
)

const testSecret = "test-secret"

type fakeUserStore struct {
	users   map[string]*models.User
	nextID  uint
	findErr error
}

func (f *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	user, ok := f.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) Create(user *models.User) error {
	if _, ok := f.users[user.Email]; ok {
		return storage.ErrDuplicate
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

type fakeDocumentStore struct {
	docs []models.Document
}

func (f *fakeDocumentStore) Create(doc *models.Document) error {
	doc.ID = uint(len(f.docs) + 1)
	f.docs = append(f.docs, *doc)
	return nil
}

func newTestApp(t *testing.T) *fiber.App {
	return newTestAppWithUsers(t, &fakeUserStore{users: make(map[string]*models.User)})
}

func newTestAppWithUsers(t *testing.T, users storage.UserStore) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:      testSecret,
		AccessTokenTTL: 30 * time.Minute,
		UploadDir:      t.TempDir(),
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := services.NewAuthService(users, tokens)
	documentService := services.NewDocumentService(&fakeDocumentStore{}, cfg.UploadDir)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewHealthHandler(),
		handlers.NewAuthHandler(authService),
		handlers.NewTaxHandler(),
		handlers.NewDocumentHandler(documentService),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRootRoute(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Backend is running", decodeBody(t, resp)["message"])
}

func TestRegisterLoginProtectedFlow(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	registered := decodeBody(t, resp)
	require.Equal(t, "a@x.com", registered["email"])
	require.NotZero(t, registered["id"])

	resp = doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decodeBody(t, resp)
	require.Equal(t, "bearer", login["token_type"])
	token, _ := login["access_token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/protected-route", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protected, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, protected.StatusCode)
	body := decodeBody(t, protected)
	require.Equal(t, "a@x.com", body["email"])
	require.Equal(t, "This is a protected route", body["msg"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"email": "a@x.com", "password": "other",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Email already registered", decodeBody(t, resp)["message"])
}

func TestRegisterStoreFailureStaysServerSide(t *testing.T) {
	store := &fakeUserStore{
		users:   make(map[string]*models.User),
		findErr: errors.New("pq: connection refused host=db-internal.corp:5432"),
	}
	app := newTestAppWithUsers(t, store)

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// Generic message only: the store error never reaches the client.
	body := decodeBody(t, resp)
	require.Equal(t, "Internal server error", body["message"])
	require.NotContains(t, body["message"], "connection refused")
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Email and password are required", decodeBody(t, resp)["message"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	wrongPassword := doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)

	unknownUser := doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email": "nobody@x.com", "password": "pw1",
	})
	require.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)

	// Same generic message either way: no user enumeration via error content.
	require.Equal(t, decodeBody(t, wrongPassword)["message"], decodeBody(t, unknownUser)["message"])
}

func TestProtectedRouteRejectsBadTokens(t *testing.T) {
	app := newTestApp(t)

	// No token at all.
	req := httptest.NewRequest(http.MethodGet, "/protected-route", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Signed with the wrong key.
	forged, err := auth.NewTokenManager("other-secret", time.Minute).Issue("a@x.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/protected-route", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Expired.
	expired, err := auth.NewTokenManager(testSecret, -time.Minute).Issue("a@x.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/protected-route", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Valid signature but the subject no longer resolves to a user.
	ghost, err := auth.NewTokenManager(testSecret, time.Minute).Issue("ghost@x.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/protected-route", nil)
	req.Header.Set("Authorization", "Bearer "+ghost)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCalculateTax(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/calculate-tax", map[string]float64{"income": 1_000_000})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.InDelta(t, 1_000_000, body["income"].(float64), 0.001)
	require.InDelta(t, 112_500, body["tax"].(float64), 0.001)

	resp = doJSON(t, app, http.MethodPost, "/calculate-tax", map[string]float64{"income": -5})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadDocument(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "payslip.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-document?user_id=1&document_type=payslip", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.NotZero(t, body["id"])
	require.Equal(t, "payslip", body["document_type"])
	require.NotEmpty(t, body["file_path"])
}

func TestUploadDocumentRequiresFile(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/upload-document?user_id=1&document_type=payslip", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
