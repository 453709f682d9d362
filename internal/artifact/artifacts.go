package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LauncherName is the executable inside the install directory the launcher
// symlink points at.
const LauncherName = "firefox"

// RemoveTargetTree recursively deletes the install directory. Absence is
// success.
func (m *Manager) RemoveTargetTree(targetDir string) error {
	m.logger.Debug("removing target tree", "dir", targetDir)
	if err := os.RemoveAll(targetDir); err != nil {
		return fmt.Errorf("remove %s: %w", targetDir, err)
	}
	return nil
}

// CreateSymlink links linkPath to targetDir/firefox. Any existing entry at
// linkPath, stale link or regular file alike, is removed first so exactly
// one symlink exists afterward.
func (m *Manager) CreateSymlink(targetDir, linkPath string) error {
	target := filepath.Join(targetDir, LauncherName)

	if err := os.Remove(linkPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove existing %s: %w", linkPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(linkPath), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", linkPath, err)
	}
	if err := os.Symlink(target, linkPath); err != nil {
		return fmt.Errorf("create symlink %s: %w", linkPath, err)
	}
	m.logger.Debug("symlink created", "link", linkPath, "target", target)
	return nil
}

// RemoveSymlink deletes the launcher symlink. Absence is success.
func (m *Manager) RemoveSymlink(linkPath string) error {
	if err := os.Remove(linkPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove symlink %s: %w", linkPath, err)
	}
	return nil
}

// VerifySymlink checks that linkPath is a symlink pointing at
// targetDir/firefox.
func (m *Manager) VerifySymlink(targetDir, linkPath string) error {
	want := filepath.Join(targetDir, LauncherName)

	info, err := os.Lstat(linkPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", linkPath, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("%s is not a symlink", linkPath)
	}
	got, err := os.Readlink(linkPath)
	if err != nil {
		return fmt.Errorf("read symlink %s: %w", linkPath, err)
	}
	if got != want {
		return fmt.Errorf("%s points at %s, want %s", linkPath, got, want)
	}
	return nil
}
