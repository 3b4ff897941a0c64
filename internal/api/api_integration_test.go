package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// newIntegrationEnv serves the full router on the shared PostgreSQL store.
// Tests use unique usernames since the database is not reset between them.
func newIntegrationEnv(t *testing.T) *testEnv {
	t.Helper()
	if integrationStore == nil {
		t.Skip("postgres not started in -short mode")
	}
	server := NewServer(testConfig(), integrationStore, nil)
	return &testEnv{server: server, handler: server.Routes()}
}

func TestAPI_NoteLifecycle(t *testing.T) {
	env := newIntegrationEnv(t)

	userID, cookie := env.signup(t, "it_lifecycle")

	noteID := env.createNote(t, cookie, map[string]any{
		"userId":  userID,
		"title":   "Groceries",
		"content": "milk, eggs and a very long list of things that keeps going on",
		"isBold":  1,
	})

	rr := env.do(t, http.MethodGet, fmt.Sprintf("/api/note/notes/%d", noteID), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	note := readJSON(t, rr)["note"].(map[string]any)
	require.Equal(t, "Inter", note["fontFamily"])
	require.EqualValues(t, 16, note["fontSize"])
	require.Equal(t, "whitesmoke", note["color"])
	require.Equal(t, true, note["isBold"])
	require.Equal(t, false, note["isPinned"])
	require.Nil(t, note["updatedAt"])

	rr = env.do(t, http.MethodPut, fmt.Sprintf("/api/note/update/%d", noteID), map[string]any{"isPinned": true}, cookie)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodGet, fmt.Sprintf("/api/note/user/%d?search=EGGS", userID), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	notes := readJSON(t, rr)["notes"].([]any)
	require.Len(t, notes, 1)
	summary := notes[0].(map[string]any)
	require.Equal(t, true, summary["isPinned"])
	require.NotNil(t, summary["updatedAt"])
	require.Equal(t, summary["updatedAt"], summary["lastModified"])
	require.Len(t, summary["preview"], 50)

	rr = env.do(t, http.MethodGet, fmt.Sprintf("/api/note/%d/export", noteID), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))

	rr = env.do(t, http.MethodDelete, fmt.Sprintf("/api/note/delete/%d", noteID), nil, cookie)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodGet, fmt.Sprintf("/api/note/notes/%d", noteID), nil, cookie)
	requireError(t, rr, http.StatusNotFound, "note not found")
}

func TestAPI_RegisterConflicts(t *testing.T) {
	env := newIntegrationEnv(t)

	env.register(t, "it_conflict", "it_conflict@x.com", "secret1")

	rr := env.do(t, http.MethodPost, "/api/authentication/register", map[string]any{
		"username": "it_conflict_2", "email": "it_conflict@x.com", "password": "secret1",
	}, nil)
	requireError(t, rr, http.StatusBadRequest, "email in use")

	rr = env.do(t, http.MethodPost, "/api/authentication/register", map[string]any{
		"username": "it_conflict", "email": "it_conflict_2@x.com", "password": "secret1",
	}, nil)
	requireError(t, rr, http.StatusBadRequest, "username in use")
}

func TestAPI_SessionEndsWithLogout(t *testing.T) {
	env := newIntegrationEnv(t)

	userID, cookie := env.signup(t, "it_logout")

	rr := env.do(t, http.MethodGet, fmt.Sprintf("/api/user/%d", userID), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/user/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodGet, fmt.Sprintf("/api/user/%d", userID), nil, cookie)
	requireError(t, rr, http.StatusUnauthorized, "not authenticated")
}

func TestAPI_DeleteProfileRemovesEverything(t *testing.T) {
	env := newIntegrationEnv(t)

	userID, cookie := env.signup(t, "it_delete")
	noteID := env.createNote(t, cookie, map[string]any{"userId": userID, "title": "doomed"})

	rr := env.do(t, http.MethodPost, "/api/user/delete", map[string]any{
		"userId": userID, "currentPassword": "secret1",
	}, cookie)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	note, err := integrationStore.GetNoteByID(t.Context(), noteID)
	require.NoError(t, err)
	require.Nil(t, note)

	user, err := integrationStore.GetUserByID(t.Context(), userID)
	require.NoError(t, err)
	require.Nil(t, user)

	rr = env.do(t, http.MethodGet, fmt.Sprintf("/api/user/%d", userID), nil, cookie)
	requireError(t, rr, http.StatusUnauthorized, "not authenticated")
}

func TestAPI_HealthOverTCP(t *testing.T) {
	ts := httptest.NewServer(newIntegrationEnv(t).handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
