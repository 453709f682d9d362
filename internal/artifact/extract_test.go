package artifact

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func testManager() *Manager {
	return NewManager(log.NewWithOptions(io.Discard, log.Options{}))
}

type tarEntry struct {
	name     string
	typeflag byte
	content  string
	linkname string
	mode     int64
}

// writeTarGz builds a .tar.gz archive from the given entries.
func writeTarGz(t *testing.T, entries []tarEntry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.tar.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	tw := tar.NewWriter(zw)
	for _, e := range entries {
		mode := e.mode
		if mode == 0 {
			mode = 0o644
			if e.typeflag == tar.TypeDir {
				mode = 0o755
			}
		}
		hdr := &tar.Header{
			Name:     e.name,
			Typeflag: e.typeflag,
			Mode:     mode,
			Size:     int64(len(e.content)),
			Linkname: e.linkname,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", e.name, err)
		}
		if e.typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.content)); err != nil {
				t.Fatalf("write content %s: %v", e.name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return path
}

// firefoxArchive builds a minimal release-shaped tarball: one top-level
// directory wrapping the application tree.
func firefoxArchive(t *testing.T) string {
	t.Helper()
	return writeTarGz(t, []tarEntry{
		{name: "firefox", typeflag: tar.TypeDir},
		{name: "firefox/firefox", typeflag: tar.TypeReg, content: "#!launcher", mode: 0o755},
		{name: "firefox/browser/chrome/icons/default/default128.png", typeflag: tar.TypeReg, content: "png"},
		{name: "firefox/firefox-bin", typeflag: tar.TypeSymlink, linkname: "firefox"},
	})
}

func TestExtractStripsTopLevelDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "opt", "firefox")

	if err := testManager().Extract(firefoxArchive(t), target); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	launcher := filepath.Join(target, "firefox")
	info, err := os.Stat(launcher)
	if err != nil {
		t.Fatalf("launcher missing after extract: %v", err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("launcher mode = %v, want executable", info.Mode())
	}

	if _, err := os.Stat(filepath.Join(target, IconRelPath)); err != nil {
		t.Errorf("icon missing after extract: %v", err)
	}

	link, err := os.Readlink(filepath.Join(target, "firefox-bin"))
	if err != nil {
		t.Fatalf("symlink entry not extracted: %v", err)
	}
	if link != "firefox" {
		t.Errorf("symlink target = %q, want firefox", link)
	}

	// Top-level wrapper must not survive.
	if _, err := os.Stat(filepath.Join(target, "firefox", "firefox")); err == nil {
		t.Error("top-level directory was not stripped")
	}
}

func TestExtractIsIdempotentOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "firefox")
	m := testManager()

	if err := m.Extract(firefoxArchive(t), target); err != nil {
		t.Fatalf("first Extract() error = %v", err)
	}
	if err := m.Extract(firefoxArchive(t), target); err != nil {
		t.Fatalf("second Extract() error = %v", err)
	}
}

func TestExtractRejectsUnsafePaths(t *testing.T) {
	tests := []struct {
		name    string
		entries []tarEntry
	}{
		{
			name: "path traversal",
			entries: []tarEntry{
				{name: "firefox/../../evil", typeflag: tar.TypeReg, content: "x"},
			},
		},
		{
			name: "absolute symlink target",
			entries: []tarEntry{
				{name: "firefox/link", typeflag: tar.TypeSymlink, linkname: "/etc/passwd"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := t.TempDir()
			if err := testManager().Extract(writeTarGz(t, tt.entries), target); err == nil {
				t.Error("Extract() should reject unsafe archive")
			}
		})
	}
}

func TestExtractCorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tar.gz")
	if err := os.WriteFile(path, []byte("not a gzip stream"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := testManager().Extract(path, t.TempDir()); err == nil {
		t.Error("Extract() of corrupt archive should fail")
	}
}

func TestExtractUnknownSuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.tar.zst")
	if err := os.WriteFile(path, []byte("zstd"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := testManager().Extract(path, t.TempDir())
	if !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedCompression", err)
	}
}

func TestSupportsCompression(t *testing.T) {
	for _, suffix := range []string{"gz", "bz2", "xz"} {
		if err := SupportsCompression(suffix); err != nil {
			t.Errorf("SupportsCompression(%q) = %v, want nil", suffix, err)
		}
	}
	if err := SupportsCompression("zst"); !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("SupportsCompression(zst) = %v, want ErrUnsupportedCompression", err)
	}
}
