package resolve

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrVersionParse means the archive filename does not follow the
// firefox-<version>.tar.<compression> convention.
var ErrVersionParse = errors.New("cannot parse version from archive filename")

// archiveNameRegex matches the upstream archive naming convention. The
// version token is treated as opaque; beta and build tags like "118.0b3"
// carry no ordering semantics here.
var archiveNameRegex = regexp.MustCompile(`^firefox-(.+)\.tar\.(gz|bz2|xz)$`)

// ParseArchiveName extracts the version token and compression suffix from
// an archive filename such as "firefox-118.0b3.tar.xz".
func ParseArchiveName(filename string) (version, compression string, err error) {
	matches := archiveNameRegex.FindStringSubmatch(filename)
	if matches == nil {
		return "", "", fmt.Errorf("%w: %q", ErrVersionParse, filename)
	}
	return matches[1], matches[2], nil
}
