// Package lifecycle drives the install, update, uninstall, and status
// transitions for the managed Firefox installation. It is the only place
// that sequences the resolver, the downloader, the artifact manager, and
// the state store; every mutating chain is fail-fast and the version
// record is written strictly after extraction succeeds.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/adamancini/foxup/internal/artifact"
	"github.com/adamancini/foxup/internal/config"
	"github.com/adamancini/foxup/internal/fetch"
	"github.com/adamancini/foxup/internal/resolve"
	"github.com/adamancini/foxup/internal/state"
)

// ErrNotInstalled means update or update-check ran without a prior install.
var ErrNotInstalled = errors.New("firefox is not installed; run 'foxup install' first")

// VersionResolver resolves the latest available release for a locale.
type VersionResolver interface {
	ResolveLatest(ctx context.Context, locale string) (*resolve.Info, error)
}

// ArchiveFetcher downloads an archive into a staging file.
type ArchiveFetcher interface {
	Download(ctx context.Context, url, filename string) (path string, cleanup func(), err error)
}

// Manager sequences lifecycle operations over the fixed install layout.
type Manager struct {
	cfg       config.Config
	resolver  VersionResolver
	fetcher   ArchiveFetcher
	store     *state.Store
	artifacts *artifact.Manager
	logger    *log.Logger
	out       io.Writer // informational messages for the operator
}

// NewManager wires a manager with its production collaborators.
func NewManager(cfg config.Config, logger *log.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		resolver:  resolve.New(cfg.EndpointTemplate, logger),
		fetcher:   fetch.NewDownloader(logger),
		store:     state.NewStore(cfg.InstallDir, cfg.RecordFileName, cfg.DefaultLocale),
		artifacts: artifact.NewManager(logger),
		logger:    logger,
		out:       os.Stdout,
	}
}

func (m *Manager) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// resolveLocale applies the locale policy: an explicit flag always wins,
// then a previously recorded non-default locale, then the default. A
// recorded locale equal to the default is not a pin.
func (m *Manager) resolveLocale(flag string) string {
	if flag != "" {
		return flag
	}
	rec := m.store.Read()
	if rec.Locale != "" && rec.Locale != m.cfg.DefaultLocale {
		return rec.Locale
	}
	return m.cfg.DefaultLocale
}

// Install resolves the latest release, downloads and extracts it into the
// install directory, records the installed version, and (re)creates the
// launcher symlink and desktop entry. It works from both the absent and
// the installed state.
func (m *Manager) Install(ctx context.Context, localeFlag string) error {
	locale := m.resolveLocale(localeFlag)

	info, err := m.resolver.ResolveLatest(ctx, locale)
	if err != nil {
		return fmt.Errorf("resolve latest version: %w", err)
	}
	if err := artifact.SupportsCompression(info.Compression); err != nil {
		return err
	}

	m.printf("Installing Firefox %s (%s) to %s\n", info.Version, locale, m.cfg.InstallDir)

	if err := m.fetchAndExtract(ctx, info, locale); err != nil {
		return err
	}

	if err := m.artifacts.CreateSymlink(m.cfg.InstallDir, m.cfg.SymlinkPath); err != nil {
		return err
	}
	execPath := filepath.Join(m.cfg.InstallDir, artifact.LauncherName)
	iconPath := filepath.Join(m.cfg.InstallDir, artifact.IconRelPath)
	if err := m.artifacts.WriteDesktopEntry(m.cfg.DesktopEntryPath, execPath, iconPath); err != nil {
		return err
	}

	m.printf("Firefox %s installed.\n", info.Version)
	return nil
}

// Update brings an existing installation to the latest release. With
// checkOnly it only reports whether an update exists. It is an error to
// update a host that was never installed.
func (m *Manager) Update(ctx context.Context, localeFlag string, checkOnly bool) error {
	rec := m.store.Read()
	if !rec.Installed() {
		return ErrNotInstalled
	}

	locale := m.resolveLocale(localeFlag)

	info, err := m.resolver.ResolveLatest(ctx, locale)
	if err != nil {
		return fmt.Errorf("resolve latest version: %w", err)
	}

	// Exact string comparison: the version token's internal structure is
	// not guaranteed stable, so any textual difference counts as newer.
	if info.Version == rec.Version {
		m.printf("Firefox %s is already the latest version.\n", rec.Version)
		return nil
	}

	if checkOnly {
		m.printf("Update available: %s -> %s\n", rec.Version, info.Version)
		return nil
	}

	if err := artifact.SupportsCompression(info.Compression); err != nil {
		return err
	}

	m.printf("Updating Firefox %s -> %s (%s)\n", rec.Version, info.Version, locale)

	if err := m.fetchAndExtract(ctx, info, locale); err != nil {
		return err
	}

	m.printf("Firefox updated to %s.\n", info.Version)
	return nil
}

// fetchAndExtract downloads the archive, unpacks it over the install
// directory, and records the new version. The record write happens only
// after extraction fully succeeded: a crash mid-extraction leaves the old
// record in place and the tree repairable by re-running update.
func (m *Manager) fetchAndExtract(ctx context.Context, info *resolve.Info, locale string) error {
	archivePath, cleanup, err := m.fetcher.Download(ctx, info.URL, info.Filename)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.artifacts.Extract(archivePath, m.cfg.InstallDir); err != nil {
		return fmt.Errorf("extract archive: %w", err)
	}

	if err := m.store.Write(state.Record{Version: info.Version, Locale: locale}); err != nil {
		return err
	}
	return nil
}

// Uninstall removes the target tree, the launcher symlink, and the desktop
// entry, in that order, stopping at the first failure. Running it on an
// absent installation succeeds.
func (m *Manager) Uninstall() error {
	if err := m.artifacts.RemoveTargetTree(m.cfg.InstallDir); err != nil {
		return err
	}
	if err := m.artifacts.RemoveSymlink(m.cfg.SymlinkPath); err != nil {
		return err
	}
	if err := m.artifacts.RemoveDesktopEntry(m.cfg.DesktopEntryPath); err != nil {
		return err
	}
	m.printf("Firefox has been removed.\n")
	return nil
}
