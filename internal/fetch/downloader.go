// Package fetch streams release archives into a temporary staging file. The
// staging file is owned by a single invocation and is always removed by the
// returned cleanup function, whichever way the invocation ends.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Downloader transfers archives over HTTP.
type Downloader struct {
	client   *http.Client
	logger   *log.Logger
	feedback io.Writer // spinner target; defaults to stderr
}

// NewDownloader creates a downloader.
func NewDownloader(logger *log.Logger) *Downloader {
	return &Downloader{
		client:   &http.Client{},
		logger:   logger,
		feedback: os.Stderr,
	}
}

// Download fetches url into a staging file in the system temp directory.
// The staging name preserves the archive suffix so the extractor can pick
// its decompressor. On success the caller must invoke cleanup when done
// with the file; on failure the staging file is already gone.
func (d *Downloader) Download(ctx context.Context, url, filename string) (path string, cleanup func(), err error) {
	tmp, err := os.CreateTemp("", "foxup-*"+archiveSuffix(filename))
	if err != nil {
		return "", nil, fmt.Errorf("create staging file: %w", err)
	}
	staging := tmp.Name()
	cleanup = func() { _ = os.Remove(staging) }

	defer func() {
		if err != nil {
			_ = os.Remove(staging)
		}
	}()

	d.logger.Debug("downloading archive", "url", url, "staging", staging)

	spin := startSpinner(d.feedback, "Downloading "+filename)
	defer spin.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		_ = tmp.Close()
		return "", nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		_ = tmp.Close()
		return "", nil, fmt.Errorf("download archive: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_ = tmp.Close()
		return "", nil, fmt.Errorf("download archive: unexpected status %s", resp.Status)
	}

	written, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = tmp.Close()
		return "", nil, fmt.Errorf("download archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", nil, fmt.Errorf("finish staging file: %w", err)
	}
	if resp.ContentLength > 0 && written != resp.ContentLength {
		return "", nil, fmt.Errorf("download archive: got %d of %d bytes", written, resp.ContentLength)
	}

	d.logger.Debug("download complete", "bytes", written)
	return staging, cleanup, nil
}

// archiveSuffix returns the ".tar.<compression>" tail of an archive
// filename, or empty when the name does not look like a tarball.
func archiveSuffix(filename string) string {
	if idx := strings.Index(filename, ".tar."); idx >= 0 {
		return filename[idx:]
	}
	return ""
}
