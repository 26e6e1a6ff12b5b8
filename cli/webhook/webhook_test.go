package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var gotPayload Message
	var gotFilename string
	var gotFileBytes []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.NoError(t, json.Unmarshal([]byte(r.FormValue("payload_json")), &gotPayload))

		file, header, err := r.FormFile("files[0]")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotFileBytes, err = io.ReadAll(file)
		require.NoError(t, err)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	imagePath := filepath.Join(t.TempDir(), "timelapse-256.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("png-bytes"), 0644))

	err := New(server.URL).Send(Message{
		Content:  "Time: Day 208, 08:00 (Daytime)\nDifficulty: Normal",
		Username: "Chunky Timelapse",
	}, imagePath)
	require.NoError(t, err)

	require.Equal(t, "Chunky Timelapse", gotPayload.Username)
	require.Contains(t, gotPayload.Content, "Day 208")
	require.Equal(t, "timelapse-256.png", gotFilename)
	require.Equal(t, "png-bytes", string(gotFileBytes))
}

func TestClient_SendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid webhook token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	imagePath := filepath.Join(t.TempDir(), "snap.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("png"), 0644))

	err := New(server.URL).Send(Message{Content: "hi"}, imagePath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func TestClient_SendMissingImage(t *testing.T) {
	err := New("http://127.0.0.1:0").Send(Message{}, filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}
