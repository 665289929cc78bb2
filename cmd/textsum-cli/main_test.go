package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drywaters/textsum/internal/client"
)

func newFakeServer(t *testing.T, status int, body string, got *string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if got != nil {
			*got = req.Text
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestRun(t *testing.T) {
	color.NoColor = true
	t.Setenv("TEXTSUM_SERVER_URL", "")

	t.Run("args", func(t *testing.T) {
		var got string
		ts := newFakeServer(t, http.StatusOK, `{"summary":"A test."}`, &got)
		var stdout, stderr bytes.Buffer

		code := run([]string{"--server", ts.URL, "Hello", "world"}, strings.NewReader(""), &stdout, &stderr)

		assert.Equal(t, 0, code)
		assert.Equal(t, "A test.\n", stdout.String())
		assert.Contains(t, stderr.String(), "Summarizing...")
		assert.Equal(t, "Hello world", got)
	})

	t.Run("stdin", func(t *testing.T) {
		var got string
		ts := newFakeServer(t, http.StatusOK, `{"summary":"From stdin."}`, &got)
		var stdout, stderr bytes.Buffer

		code := run([]string{"-s", ts.URL}, strings.NewReader("piped text\n"), &stdout, &stderr)

		assert.Equal(t, 0, code)
		assert.Equal(t, "From stdin.\n", stdout.String())
		assert.Equal(t, "piped text\n", got)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.txt")
		require.NoError(t, os.WriteFile(path, []byte("file text"), 0o600))
		var got string
		ts := newFakeServer(t, http.StatusOK, `{"summary":"From file."}`, &got)
		var stdout, stderr bytes.Buffer

		code := run([]string{"--server", ts.URL, "--file", path}, strings.NewReader(""), &stdout, &stderr)

		assert.Equal(t, 0, code)
		assert.Equal(t, "file text", got)
	})

	t.Run("server env", func(t *testing.T) {
		ts := newFakeServer(t, http.StatusOK, `{"summary":"Env."}`, nil)
		t.Setenv("TEXTSUM_SERVER_URL", ts.URL+"/")
		var stdout, stderr bytes.Buffer

		code := run([]string{"hi"}, strings.NewReader(""), &stdout, &stderr)

		assert.Equal(t, 0, code)
		assert.Equal(t, "Env.\n", stdout.String())
	})

	t.Run("not ready", func(t *testing.T) {
		ts := newFakeServer(t, http.StatusServiceUnavailable, `{"error":"Summarizer is not ready."}`, nil)
		var stdout, stderr bytes.Buffer

		code := run([]string{"--server", ts.URL, "hi"}, strings.NewReader(""), &stdout, &stderr)

		assert.Equal(t, 1, code)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), client.MsgNotReady)
	})

	t.Run("blank input", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"--server", "http://127.0.0.1:1"}, strings.NewReader("  \n"), &stdout, &stderr)

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), client.MsgEmptyInput)
	})

	t.Run("missing file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"--file", filepath.Join(t.TempDir(), "nope")}, strings.NewReader(""), &stdout, &stderr)

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "failed to read")
	})

	t.Run("help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run([]string{"--help"}, strings.NewReader(""), &stdout, &stderr)

		assert.Equal(t, 0, code)
		assert.Contains(t, stderr.String(), "Usage: textsum-cli")
	})
}
