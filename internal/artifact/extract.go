// Package artifact manages the on-disk pieces foxup owns exclusively: the
// install directory tree, the launcher symlink, and the desktop entry.
package artifact

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ulikunitz/xz"
)

// ErrUnsupportedCompression means the archive uses a compression family
// this build cannot unpack. It is checked before any download or mutation.
var ErrUnsupportedCompression = errors.New("unsupported archive compression")

// Manager performs the filesystem operations on foxup-owned artifacts.
type Manager struct {
	logger *log.Logger
}

// NewManager creates an artifact manager.
func NewManager(logger *log.Logger) *Manager {
	return &Manager{logger: logger}
}

// SupportsCompression reports whether archives with the given compression
// suffix can be extracted. Callers check this eagerly, before transferring
// anything.
func SupportsCompression(suffix string) error {
	switch suffix {
	case "gz", "bz2", "xz":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedCompression, suffix)
	}
}

// Extract unpacks the archive into targetDir, creating it if absent. The
// archive is expected to contain a single top-level directory, which is
// stripped so the application tree lands directly in targetDir. A failed
// extraction may leave targetDir partially populated; the caller decides
// whether to retry or uninstall.
func (m *Manager) Extract(archivePath, targetDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	decompressed, err := newDecompressor(archivePath, f)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("create target directory %s: %w", targetDir, err)
	}

	m.logger.Debug("extracting archive", "archive", archivePath, "target", targetDir)

	tr := tar.NewReader(decompressed)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}
		if err := m.extractEntry(tr, hdr, targetDir); err != nil {
			return err
		}
	}
}

// newDecompressor wraps r according to the archive filename's compression
// suffix.
func newDecompressor(archivePath string, r io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("read gzip archive: %w", err)
		}
		return zr, nil
	case strings.HasSuffix(archivePath, ".tar.bz2"):
		return bzip2.NewReader(r), nil
	case strings.HasSuffix(archivePath, ".tar.xz"):
		zr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("read xz archive: %w", err)
		}
		return zr, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, filepath.Base(archivePath))
	}
}

// stripComponent removes the single leading path component from an archive
// entry name. An empty result means the entry was the top-level directory
// itself and carries no content of its own.
func stripComponent(name string) (string, error) {
	clean := filepath.Clean(strings.TrimPrefix(name, "./"))
	if clean == "." {
		return "", nil
	}
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("unsafe archive path: %q", name)
	}
	_, rest, found := strings.Cut(clean, string(filepath.Separator))
	if !found {
		return "", nil
	}
	return rest, nil
}

func (m *Manager) extractEntry(tr *tar.Reader, hdr *tar.Header, targetDir string) error {
	rel, err := stripComponent(hdr.Name)
	if err != nil {
		return err
	}
	if rel == "" {
		return nil
	}
	dest := filepath.Join(targetDir, rel)
	mode := hdr.FileInfo().Mode()

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(dest, mode.Perm()); err != nil {
			return fmt.Errorf("create directory %s: %w", dest, err)
		}
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", dest, err)
		}
		out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
		if err != nil {
			return fmt.Errorf("create file %s: %w", dest, err)
		}
		if _, err := io.Copy(out, tr); err != nil {
			_ = out.Close()
			return fmt.Errorf("write file %s: %w", dest, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("write file %s: %w", dest, err)
		}
	case tar.TypeSymlink:
		if strings.HasPrefix(hdr.Linkname, "/") {
			return fmt.Errorf("unsafe symlink target in archive: %q -> %q", hdr.Name, hdr.Linkname)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", dest, err)
		}
		if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("replace %s: %w", dest, err)
		}
		if err := os.Symlink(hdr.Linkname, dest); err != nil {
			return fmt.Errorf("create symlink %s: %w", dest, err)
		}
	default:
		// Hard links, devices, and the like do not appear in release
		// tarballs; skip rather than fail.
		m.logger.Debug("skipping archive entry", "name", hdr.Name, "type", hdr.Typeflag)
	}
	return nil
}
