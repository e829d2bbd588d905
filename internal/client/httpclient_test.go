package client_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/UnknownOlympus/staffbook/internal/client"
)

func TestCreateHTTPClient(t *testing.T) {
	var logBuf bytes.Buffer // buffer for log capturing
	testLogger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
		Level: slog.LevelDebug, // Level debug needed, for CheckRedirect message capturing
	}))

	t.Run("client properties", func(t *testing.T) {
		httpClient := client.CreateHTTPClient(testLogger)

		if httpClient.Timeout == 0 {
			t.Error("client.Timeout must be set")
		}

		if httpClient.CheckRedirect == nil {
			t.Error("client.CheckRedirect must be set and must not be nil")
		}
	})

	t.Run("CheckRedirect behavior - redirection and logging", func(t *testing.T) {
		logBuf.Reset()

		finalPath := "/final-destination"
		redirectPath := "/redirect-here"

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case redirectPath:
				http.Redirect(w, r, finalPath, http.StatusFound)
			case finalPath:
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("Endpoint successfully reached"))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		httpClient := client.CreateHTTPClient(testLogger)

		resp, err := httpClient.Get(server.URL + redirectPath)
		if err != nil {
			t.Fatalf("client.Get failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status OK (200) after redirect, but received %d", resp.StatusCode)
		}
		if resp.Request.URL.Path != finalPath {
			t.Errorf("Expected request final path %s, but received %s", finalPath, resp.Request.URL.Path)
		}

		// slog text log format: level=DEBUG msg="Redirected to URL" URL=http://127.0.0.1:xxxx/final-destination
		loggedOutput := logBuf.String()
		if !strings.Contains(loggedOutput, "Redirected to URL") {
			t.Errorf("The log output does not contain the redirect message. Log:\n%s", loggedOutput)
		}
		if !strings.Contains(loggedOutput, "URL="+server.URL+finalPath) {
			t.Errorf("The log output does not contain the expected URL attribute. Log:\n%s", loggedOutput)
		}
	})
}
