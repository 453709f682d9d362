package lifecycle

import (
	"fmt"
	"os"
	"strings"
)

// CheckState classifies a single artifact check.
type CheckState string

const (
	CheckOK      CheckState = "OK"
	CheckWarning CheckState = "WARNING"
	CheckError   CheckState = "ERROR"
)

// Check is the outcome of verifying one artifact.
type Check struct {
	Name   string     `json:"name" yaml:"name"`
	State  CheckState `json:"state" yaml:"state"`
	Detail string     `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Report aggregates the status operation. It is always produced in full;
// one failing check never prevents the others from running.
type Report struct {
	Installed bool    `json:"installed" yaml:"installed"`
	Version   string  `json:"version,omitempty" yaml:"version,omitempty"`
	Locale    string  `json:"locale,omitempty" yaml:"locale,omitempty"`
	Checks    []Check `json:"checks" yaml:"checks"`
	Healthy   bool    `json:"healthy" yaml:"healthy"`
}

// String renders the plain-text form of the report.
func (r *Report) String() string {
	var sb strings.Builder
	if r.Installed {
		fmt.Fprintf(&sb, "Firefox %s (%s) is installed.\n", r.Version, r.Locale)
	} else {
		sb.WriteString("Firefox is not installed.\n")
	}
	for _, c := range r.Checks {
		fmt.Fprintf(&sb, "  [%s] %s", c.State, c.Name)
		if c.Detail != "" {
			fmt.Fprintf(&sb, ": %s", c.Detail)
		}
		sb.WriteByte('\n')
	}
	if r.Healthy {
		sb.WriteString("All checks passed.\n")
	} else {
		sb.WriteString("Issues found.\n")
	}
	return sb.String()
}

// Status reads the record and independently verifies each artifact. It
// never fails as a whole: individual check failures are folded into the
// report and the aggregate Healthy flag.
func (m *Manager) Status() *Report {
	rec := m.store.Read()
	report := &Report{Installed: rec.Installed()}
	if report.Installed {
		report.Version = rec.Version
		report.Locale = rec.Locale
	}

	report.Checks = []Check{
		m.checkTargetDir(report.Installed),
		m.checkSymlink(report.Installed),
		m.checkDesktopEntry(report.Installed),
	}

	report.Healthy = true
	for _, c := range report.Checks {
		if c.State != CheckOK {
			report.Healthy = false
			break
		}
	}
	return report
}

// checkTargetDir verifies the install directory. When nothing is
// installed, its absence is the expected state and a leftover tree is
// worth a warning.
func (m *Manager) checkTargetDir(installed bool) Check {
	check := Check{Name: "target directory"}
	info, err := os.Stat(m.cfg.InstallDir)

	switch {
	case err == nil && info.IsDir():
		if installed {
			check.State = CheckOK
			check.Detail = m.cfg.InstallDir
		} else {
			check.State = CheckWarning
			check.Detail = fmt.Sprintf("%s exists but no version is recorded", m.cfg.InstallDir)
		}
	case err == nil:
		check.State = CheckError
		check.Detail = fmt.Sprintf("%s is not a directory", m.cfg.InstallDir)
	case installed:
		check.State = CheckError
		check.Detail = fmt.Sprintf("%s is missing", m.cfg.InstallDir)
	default:
		check.State = CheckOK
		check.Detail = "not present"
	}
	return check
}

func (m *Manager) checkSymlink(installed bool) Check {
	check := Check{Name: "launcher symlink"}

	if _, err := os.Lstat(m.cfg.SymlinkPath); err != nil {
		if installed {
			check.State = CheckError
			check.Detail = fmt.Sprintf("%s is missing", m.cfg.SymlinkPath)
		} else {
			check.State = CheckOK
			check.Detail = "not present"
		}
		return check
	}

	// Something exists at the link path; it must be a symlink with the
	// right target regardless of recorded state.
	if err := m.artifacts.VerifySymlink(m.cfg.InstallDir, m.cfg.SymlinkPath); err != nil {
		check.State = CheckError
		check.Detail = err.Error()
		return check
	}

	if installed {
		check.State = CheckOK
		check.Detail = m.cfg.SymlinkPath
	} else {
		check.State = CheckWarning
		check.Detail = fmt.Sprintf("%s exists but no version is recorded", m.cfg.SymlinkPath)
	}
	return check
}

func (m *Manager) checkDesktopEntry(installed bool) Check {
	check := Check{Name: "desktop entry"}
	_, err := os.Stat(m.cfg.DesktopEntryPath)

	switch {
	case err == nil && installed:
		check.State = CheckOK
		check.Detail = m.cfg.DesktopEntryPath
	case err == nil:
		check.State = CheckWarning
		check.Detail = fmt.Sprintf("%s exists but no version is recorded", m.cfg.DesktopEntryPath)
	case installed:
		check.State = CheckError
		check.Detail = fmt.Sprintf("%s is missing", m.cfg.DesktopEntryPath)
	default:
		check.State = CheckOK
		check.Detail = "not present"
	}
	return check
}
