package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func testDownloader() *Downloader {
	d := NewDownloader(log.NewWithOptions(io.Discard, log.Options{}))
	d.feedback = io.Discard
	return d
}

func TestDownload(t *testing.T) {
	const payload = "archive-bytes"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, payload)
	}))
	defer server.Close()

	path, cleanup, err := testDownloader().Download(context.Background(), server.URL, "firefox-118.0.tar.xz")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer cleanup()

	if !strings.HasSuffix(path, ".tar.xz") {
		t.Errorf("staging path = %q, want .tar.xz suffix preserved", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read staging file: %v", err)
	}
	if string(content) != payload {
		t.Errorf("staging content = %q, want %q", content, payload)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("staging file still present after cleanup")
	}
}

func TestDownloadHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	tmpBefore := stagingFiles(t)

	_, _, err := testDownloader().Download(context.Background(), server.URL, "firefox-118.0.tar.xz")
	if err == nil {
		t.Fatal("Download() of 404 should fail")
	}

	if got := stagingFiles(t); len(got) != len(tmpBefore) {
		t.Errorf("staging files leaked on failure: before %d, after %d", len(tmpBefore), len(got))
	}
}

func TestDownloadContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-r.Context().Done()
	}))
	defer server.Close()

	tmpBefore := stagingFiles(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := testDownloader().Download(ctx, server.URL, "firefox-118.0.tar.xz")
	if err == nil {
		t.Fatal("Download() with cancelled context should fail")
	}

	if got := stagingFiles(t); len(got) != len(tmpBefore) {
		t.Errorf("staging files leaked on cancellation: before %d, after %d", len(tmpBefore), len(got))
	}
}

// stagingFiles lists foxup staging files currently in the temp directory.
func stagingFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(os.TempDir())
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "foxup-") {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestArchiveSuffix(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"firefox-118.0.tar.xz", ".tar.xz"},
		{"firefox-118.0b3.tar.bz2", ".tar.bz2"},
		{"firefox-105.0.tar.gz", ".tar.gz"},
		{"firefox-setup.exe", ""},
	}

	for _, tt := range tests {
		if got := archiveSuffix(tt.filename); got != tt.want {
			t.Errorf("archiveSuffix(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
