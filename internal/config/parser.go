package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format represents the file format of an override file.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatTOML
	FormatJSON
)

// defaultOverridePaths are probed in order when no --config flag is given.
var defaultOverridePaths = []string{
	"/etc/foxup/config.toml",
	"/etc/foxup/config.yaml",
	"/etc/foxup/config.json",
}

// overrides is the on-disk shape of an override file. Every field is
// optional; empty values fall through to the compiled-in defaults.
type overrides struct {
	InstallDir       string `yaml:"install_dir" toml:"install_dir" json:"install_dir"`
	SymlinkPath      string `yaml:"symlink_path" toml:"symlink_path" json:"symlink_path"`
	DesktopEntryPath string `yaml:"desktop_entry_path" toml:"desktop_entry_path" json:"desktop_entry_path"`
	EndpointTemplate string `yaml:"endpoint" toml:"endpoint" json:"endpoint"`
	DefaultLocale    string `yaml:"default_locale" toml:"default_locale" json:"default_locale"`
}

// Load returns the effective configuration. With an empty path the
// well-known override locations are probed; a missing override file is not
// an error, the defaults apply as-is. An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		for _, candidate := range defaultOverridePaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var ov overrides
	switch detectFormat(path, content) {
	case FormatTOML:
		if err := toml.Unmarshal(content, &ov); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &ov); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(content, &ov); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("cannot determine format of %s (expected toml, yaml, or json)", path)
	}

	cfg.apply(ov)
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// apply merges non-empty override values onto the defaults.
func (c *Config) apply(ov overrides) {
	if ov.InstallDir != "" {
		c.InstallDir = ov.InstallDir
	}
	if ov.SymlinkPath != "" {
		c.SymlinkPath = ov.SymlinkPath
	}
	if ov.DesktopEntryPath != "" {
		c.DesktopEntryPath = ov.DesktopEntryPath
	}
	if ov.EndpointTemplate != "" {
		c.EndpointTemplate = ov.EndpointTemplate
	}
	if ov.DefaultLocale != "" {
		c.DefaultLocale = ov.DefaultLocale
	}
}

func (c Config) validate() error {
	if !filepath.IsAbs(c.InstallDir) {
		return fmt.Errorf("install_dir must be an absolute path, got %q", c.InstallDir)
	}
	if !filepath.IsAbs(c.SymlinkPath) {
		return fmt.Errorf("symlink_path must be an absolute path, got %q", c.SymlinkPath)
	}
	if !filepath.IsAbs(c.DesktopEntryPath) {
		return fmt.Errorf("desktop_entry_path must be an absolute path, got %q", c.DesktopEntryPath)
	}
	if !strings.Contains(c.EndpointTemplate, "%s") {
		return fmt.Errorf("endpoint must contain a %%s locale placeholder")
	}
	return nil
}

// detectFormat determines the file format based on extension or content.
func detectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	}
	return sniffFormat(content)
}

// sniffFormat attempts to detect the format from content for extensionless
// files: JSON opens with a brace, TOML uses `key = value`, YAML `key: value`.
func sniffFormat(content []byte) Format {
	trimmed := strings.TrimSpace(string(content))
	if strings.HasPrefix(trimmed, "{") {
		return FormatJSON
	}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "=") {
			return FormatTOML
		}
		if strings.Contains(line, ":") {
			return FormatYAML
		}
	}
	return FormatUnknown
}
