// Package resolve determines the latest Firefox version published on the
// release endpoint without downloading the archive itself. The endpoint
// answers with a redirect chain whose final Location names the
// locale- and version-specific archive; the version is derived from that
// filename alone.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/charmbracelet/log"
)

var (
	// ErrNoRedirect means the endpoint never issued a Location header, so
	// there is no archive URL to derive a version from.
	ErrNoRedirect = errors.New("release endpoint did not redirect to an archive")

	// ErrEmptyFilename means the final redirect target has no usable path
	// component.
	ErrEmptyFilename = errors.New("resolved URL does not name an archive file")
)

// Info describes the latest available release, resolved per invocation.
type Info struct {
	Version     string // upstream version token, e.g. "118.0b3"
	Filename    string // archive filename, query string stripped
	URL         string // fully resolved download URL
	Compression string // archive compression suffix: gz, bz2, or xz
}

// Resolver probes the release endpoint for the latest version.
type Resolver struct {
	client   *http.Client
	endpoint string // template with one %s verb for the locale
	logger   *log.Logger
}

// New creates a resolver for the given endpoint template.
func New(endpoint string, logger *log.Logger) *Resolver {
	return &Resolver{
		client:   &http.Client{},
		endpoint: endpoint,
		logger:   logger,
	}
}

// ResolveLatest performs a redirect-following HEAD probe for the given
// locale and parses the final Location into version metadata. No body is
// transferred. A filename that cannot be parsed is fatal; proceeding with
// an empty version would corrupt every later comparison.
func (r *Resolver) ResolveLatest(ctx context.Context, locale string) (*Info, error) {
	probeURL := fmt.Sprintf(r.endpoint, url.QueryEscape(locale))
	r.logger.Debug("probing release endpoint", "url", probeURL, "locale", locale)

	// Shallow copy shares the transport but lets this call record the
	// redirect chain without racing other invocations.
	client := *r.client
	var locations []*url.URL
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		locations = append(locations, req.URL)
		if len(via) >= 10 {
			return errors.New("stopped after 10 redirects")
		}
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build probe request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe release endpoint: %w", err)
	}
	_ = resp.Body.Close()

	if len(locations) == 0 {
		return nil, fmt.Errorf("%w (status %s)", ErrNoRedirect, resp.Status)
	}

	// The last Location observed is the final redirect target.
	final := locations[len(locations)-1]
	r.logger.Debug("redirect chain resolved", "hops", len(locations), "final", final.String())

	stripped := *final
	stripped.RawQuery = ""
	stripped.Fragment = ""

	filename := path.Base(stripped.Path)
	if filename == "." || filename == "/" || filename == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFilename, final.String())
	}

	version, compression, err := ParseArchiveName(filename)
	if err != nil {
		return nil, err
	}

	return &Info{
		Version:     version,
		Filename:    filename,
		URL:         final.String(),
		Compression: compression,
	}, nil
}
