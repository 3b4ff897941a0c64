package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notig/internal/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			Secret:     "api_test_secret",
			CookieName: "notig_session",
			TTL:        time.Hour,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

type testEnv struct {
	server  *Server
	repo    *memRepo
	handler http.Handler
}

func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	repo := newMemRepo()
	server := NewServer(cfg, repo, nil)
	return &testEnv{server: server, repo: repo, handler: server.Routes()}
}

func enforceOwnership(cfg *config.Config) {
	cfg.Security.EnforceOwnership = true
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// register creates an account through the API and returns its id.
func (e *testEnv) register(t *testing.T, username, email, password string) int64 {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/authentication/register", map[string]any{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return int64(readJSON(t, rr)["userId"].(float64))
}

// login signs in and returns the session cookie.
func (e *testEnv) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/authentication/login", map[string]any{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return sessionCookieFrom(t, rr)
}

func (e *testEnv) signup(t *testing.T, username string) (int64, *http.Cookie) {
	t.Helper()
	email := username + "@x.com"
	id := e.register(t, username, email, "secret1")
	return id, e.login(t, email, "secret1")
}

func (e *testEnv) createNote(t *testing.T, cookie *http.Cookie, body map[string]any) int64 {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/note", body, cookie)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return int64(readJSON(t, rr)["noteId"].(float64))
}

func sessionCookieFrom(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "notig_session" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func readJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	body := readJSON(t, rr)
	require.Equal(t, "error", body["status"])
	require.Equal(t, message, body["message"])
}
