// Package config defines the installation layout and remote endpoint foxup
// operates on. All paths are fixed defaults supplied by the entry point;
// components never reach for globals, they receive a Config at construction.
package config

// Config describes where foxup installs Firefox and how it reaches the
// release endpoint.
type Config struct {
	// InstallDir is the directory that owns the extracted application tree
	// and the version record.
	InstallDir string

	// SymlinkPath is the launcher symlink pointing at InstallDir/firefox.
	SymlinkPath string

	// DesktopEntryPath is the .desktop descriptor for menu integration.
	DesktopEntryPath string

	// EndpointTemplate is the redirect-based download endpoint. The single
	// %s verb is substituted with the locale.
	EndpointTemplate string

	// DefaultLocale is used when no locale was requested or recorded.
	DefaultLocale string

	// RecordFileName is the name of the version record inside InstallDir.
	RecordFileName string
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		InstallDir:       "/opt/firefox",
		SymlinkPath:      "/usr/local/bin/firefox",
		DesktopEntryPath: "/usr/share/applications/firefox.desktop",
		EndpointTemplate: "https://download.mozilla.org/?product=firefox-latest-ssl&os=linux64&lang=%s",
		DefaultLocale:    "en-US",
		RecordFileName:   ".version",
	}
}
