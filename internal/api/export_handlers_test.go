package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportNoteHandler(t *testing.T) {
	env := newTestEnv(t)
	userID, cookie := env.signup(t, "ann")
	noteID := env.createNote(t, cookie, map[string]any{
		"userId":     userID,
		"title":      `Trip "plan"; v2`,
		"content":    "Pack the map",
		"fontFamily": "Times New Roman",
		"isBold":     true,
	})

	rr := env.do(t, http.MethodGet, fmt.Sprintf("/api/note/%d/export", noteID), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="Trip plan v2.pdf"`, rr.Header().Get("Content-Disposition"))
	require.Equal(t, strconv.Itoa(rr.Body.Len()), rr.Header().Get("Content-Length"))
	require.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))

	rr = env.do(t, http.MethodGet, "/api/note/999/export", nil, cookie)
	requireError(t, rr, http.StatusNotFound, "note not found")

	rr = env.do(t, http.MethodGet, fmt.Sprintf("/api/note/%d/export", noteID), nil, nil)
	requireError(t, rr, http.StatusUnauthorized, "not authenticated")
}
