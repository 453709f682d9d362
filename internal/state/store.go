package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes the installed-state record co-located with the
// installed application tree.
type Store struct {
	dir           string
	fileName      string
	defaultLocale string
}

// NewStore creates a store for the record file dir/fileName.
func NewStore(dir, fileName, defaultLocale string) *Store {
	return &Store{dir: dir, fileName: fileName, defaultLocale: defaultLocale}
}

// Path returns the absolute location of the record file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.fileName)
}

// Read returns the persisted record. It never fails: a missing install
// directory, a missing record file, or an unreadable record all yield the
// sentinel record.
func (s *Store) Read() Record {
	content, err := os.ReadFile(s.Path())
	if err != nil {
		return Record{Version: SentinelVersion, Locale: s.defaultLocale}
	}
	return parseRecord(string(content), s.defaultLocale)
}

// Write atomically overwrites the record file, creating the install
// directory if needed. Callers must only invoke this after extraction has
// fully succeeded; the record must never claim a version whose files were
// not completely written.
func (s *Store) Write(rec Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create install directory %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, s.fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage version record: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(rec.marshal()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write version record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write version record: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("set version record permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("commit version record: %w", err)
	}
	return nil
}
