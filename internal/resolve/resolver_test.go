package resolve

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestResolveLatest(t *testing.T) {
	// Two-hop redirect chain ending in a signed archive URL, mirroring the
	// production endpoint's bouncer behavior.
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang") == "" {
			t.Error("probe URL missing lang parameter")
		}
		http.Redirect(w, r, "/pub/step", http.StatusFound)
	})
	mux.HandleFunc("/pub/step", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/pub/firefox-118.0b3.tar.bz2?sig=abc", http.StatusFound)
	})
	mux.HandleFunc("/pub/firefox-118.0b3.tar.bz2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	resolver := New(server.URL+"/?product=firefox-latest&lang=%s", testLogger())

	info, err := resolver.ResolveLatest(context.Background(), "de")
	if err != nil {
		t.Fatalf("ResolveLatest() error = %v", err)
	}
	if info.Version != "118.0b3" {
		t.Errorf("Version = %q, want 118.0b3", info.Version)
	}
	if info.Filename != "firefox-118.0b3.tar.bz2" {
		t.Errorf("Filename = %q, want query string stripped", info.Filename)
	}
	if info.Compression != "bz2" {
		t.Errorf("Compression = %q, want bz2", info.Compression)
	}
	// The resolved URL keeps its query; only the filename strips it.
	if info.URL != server.URL+"/pub/firefox-118.0b3.tar.bz2?sig=abc" {
		t.Errorf("URL = %q, want final redirect target", info.URL)
	}
}

func TestResolveLatestNoRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resolver := New(server.URL+"/?lang=%s", testLogger())

	_, err := resolver.ResolveLatest(context.Background(), "en-US")
	if !errors.Is(err, ErrNoRedirect) {
		t.Errorf("ResolveLatest() error = %v, want ErrNoRedirect", err)
	}
}

func TestResolveLatestUnparsableFilename(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/pub/firefox-setup.exe", http.StatusFound)
	})
	mux.HandleFunc("/pub/firefox-setup.exe", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	resolver := New(server.URL+"/?lang=%s", testLogger())

	_, err := resolver.ResolveLatest(context.Background(), "en-US")
	if !errors.Is(err, ErrVersionParse) {
		t.Errorf("ResolveLatest() error = %v, want ErrVersionParse", err)
	}
}

func TestResolveLatestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	resolver := New(server.URL+"/?lang=%s", testLogger())

	if _, err := resolver.ResolveLatest(context.Background(), "en-US"); err == nil {
		t.Error("ResolveLatest() against closed server should fail")
	}
}

func TestResolveLatestContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	resolver := New(server.URL+"/?lang=%s", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := resolver.ResolveLatest(ctx, "en-US"); err == nil {
		t.Error("ResolveLatest() with cancelled context should fail")
	}
}
