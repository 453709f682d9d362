// Package state persists which Firefox version and locale foxup last
// installed. The record lives inside the install directory as a single
// `version|locale` line; the raw string never leaves this package.
package state

import "strings"

// SentinelVersion marks the "not installed" state in a Record.
const SentinelVersion = "0"

// Record is the typed form of the persisted version marker.
type Record struct {
	Version string
	Locale  string
}

// Installed reports whether the record describes an actual installation.
func (r Record) Installed() bool {
	return r.Version != "" && r.Version != SentinelVersion
}

// marshal renders the on-disk form.
func (r Record) marshal() string {
	return r.Version + "|" + r.Locale + "\n"
}

// parseRecord converts the on-disk form into a Record. Malformed or empty
// input degrades to the sentinel record rather than an error; an unreadable
// marker means "not installed", never a failure.
func parseRecord(raw, defaultLocale string) Record {
	line, _, _ := strings.Cut(strings.TrimSpace(raw), "\n")
	version, locale, found := strings.Cut(line, "|")
	version = strings.TrimSpace(version)
	locale = strings.TrimSpace(locale)

	if version == "" {
		version = SentinelVersion
	}
	if !found || locale == "" {
		locale = defaultLocale
	}
	return Record{Version: version, Locale: locale}
}
