package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// IconRelPath locates the application icon inside the install directory.
const IconRelPath = "browser/chrome/icons/default/default128.png"

const desktopEntryTemplate = `[Desktop Entry]
Version=1.0
Name=Firefox
GenericName=Web Browser
Comment=Browse the World Wide Web
Exec=%s %%u
Icon=%s
Terminal=false
Type=Application
Categories=Network;WebBrowser;
MimeType=text/html;text/xml;application/xhtml+xml;x-scheme-handler/http;x-scheme-handler/https;
StartupNotify=true
`

// WriteDesktopEntry fully rewrites the desktop descriptor, substituting the
// launcher and icon paths. Never appended to; repeated writes are
// idempotent.
func (m *Manager) WriteDesktopEntry(path, execPath, iconPath string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	content := fmt.Sprintf(desktopEntryTemplate, execPath, iconPath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write desktop entry %s: %w", path, err)
	}
	m.logger.Debug("desktop entry written", "path", path)
	return nil
}

// RemoveDesktopEntry deletes the desktop descriptor. Absence is success.
func (m *Manager) RemoveDesktopEntry(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove desktop entry %s: %w", path, err)
	}
	return nil
}
