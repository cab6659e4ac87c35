package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notes-sharing-be/internal/controller"
	"notes-sharing-be/internal/pkg/serverutils"
	"notes-sharing-be/internal/pkg/token"
	"notes-sharing-be/internal/repository/memory"
	"notes-sharing-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	tokens := token.NewService("test-access", "test-refresh", 30*time.Minute, 7*24*time.Hour)
	identities := memory.NewIdentityCache()
	authGate := serverutils.NewAuthGate(tokens, factory, identities)

	ledger := service.NewSharingLedger(nopLogger{})
	authService := service.NewAuthService(factory, tokens, nil, nopLogger{})
	noteService := service.NewNoteService(factory, ledger, nil, nopLogger{})

	app := fiber.New(fiber.Config{
		ErrorHandler: serverutils.NewErrorHandler(nopLogger{}),
	})
	api := app.Group("/api")
	controller.NewAuthController(authService, 7*24*time.Hour).Route(api)
	controller.NewNoteController(noteService, authGate).Route(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, bearer string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func signupAndLogin(t *testing.T, app *fiber.App, username string) (accessToken string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": username,
		"password": "secret123",
		"email":    username + "@example.com",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": username,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func TestNoteRoutesRejectMissingToken(t *testing.T) {
	app := newTestApp(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/notes"},
		{http.MethodPost, "/api/notes"},
		{http.MethodGet, "/api/notes/00000000-0000-0000-0000-000000000000"},
		{http.MethodPut, "/api/notes/00000000-0000-0000-0000-000000000000"},
		{http.MethodDelete, "/api/notes/00000000-0000-0000-0000-000000000000"},
		{http.MethodPost, "/api/notes/00000000-0000-0000-0000-000000000000/share"},
		{http.MethodGet, "/api/search?q=x"},
	}

	for _, r := range routes {
		resp := doJSON(t, app, r.method, r.path, nil, "")
		assert.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
		resp.Body.Close()
	}
}

func TestNoteRoundTrip(t *testing.T) {
	app := newTestApp(t)
	access := signupAndLogin(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/notes", fiber.Map{
		"title":   "Groceries",
		"content": "Milk and eggs",
	}, access)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Id      string `json:"_id"`
		Title   string `json:"title"`
		Content string `json:"content"`
		OwnerId string `json:"ownerId"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.Id)
	assert.Equal(t, "Groceries", created.Title)

	resp = doJSON(t, app, http.MethodGet, "/api/notes/"+created.Id, nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched struct {
		Id      string `json:"_id"`
		Content string `json:"content"`
	}
	decodeBody(t, resp, &fetched)
	assert.Equal(t, created.Id, fetched.Id)
	assert.Equal(t, "Milk and eggs", fetched.Content)

	resp = doJSON(t, app, http.MethodGet, "/api/notes", nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []map[string]interface{}
	decodeBody(t, resp, &listed)
	assert.Len(t, listed, 1)
}

func TestCreateNoteValidationShape(t *testing.T) {
	app := newTestApp(t)
	access := signupAndLogin(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/notes", fiber.Map{
		"title": "No content",
	}, access)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "content", body.Errors[0].Field)
}

func TestUpdateAndDeleteNote(t *testing.T) {
	app := newTestApp(t)
	access := signupAndLogin(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/notes", fiber.Map{
		"title":   "Draft",
		"content": "v1",
	}, access)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Id string `json:"_id"`
	}
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, http.MethodPut, "/api/notes/"+created.Id, fiber.Map{
		"content": "v2",
	}, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "v2", updated.Content)

	resp = doJSON(t, app, http.MethodDelete, "/api/notes/"+created.Id, nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &deleted)
	assert.Equal(t, "Note deleted successfully.", deleted.Message)

	resp = doJSON(t, app, http.MethodGet, "/api/notes/"+created.Id, nil, access)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMalformedNoteIdReadsAsNotFound(t *testing.T) {
	app := newTestApp(t)
	access := signupAndLogin(t, app, "alice")

	resp := doJSON(t, app, http.MethodGet, "/api/notes/not-a-uuid", nil, access)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Note not found for the authenticated user.", body.Message)
}

func TestShareAndSearchFlow(t *testing.T) {
	app := newTestApp(t)
	aliceToken := signupAndLogin(t, app, "alice")
	bobToken := signupAndLogin(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/notes", fiber.Map{
		"title":   "Project kickoff",
		"content": "Agenda for Monday",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Id string `json:"_id"`
	}
	decodeBody(t, resp, &created)

	// Bob cannot see it yet.
	resp = doJSON(t, app, http.MethodGet, "/api/search?q=kickoff", nil, bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var results []map[string]interface{}
	decodeBody(t, resp, &results)
	assert.Empty(t, results)

	// Alice shares with bob.
	bobId := userIdFromToken(t, bobToken)
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/notes/%s/share", created.Id), fiber.Map{
		"receiverId": bobId,
	}, aliceToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var shared struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &shared)
	assert.Equal(t, "Note shared successfully.", shared.Message)

	// Sharing twice is rejected.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/notes/%s/share", created.Id), fiber.Map{
		"receiverId": bobId,
	}, aliceToken)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Now bob finds it.
	resp = doJSON(t, app, http.MethodGet, "/api/search?q=kickoff", nil, bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &results)
	require.Len(t, results, 1)
	assert.Equal(t, created.Id, results[0]["_id"])
}

func userIdFromToken(t *testing.T, accessToken string) string {
	t.Helper()
	tokens := token.NewService("test-access", "test-refresh", 30*time.Minute, 7*24*time.Hour)
	userId, err := tokens.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	return userId.String()
}
