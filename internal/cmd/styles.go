package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/adamancini/foxup/internal/lifecycle"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boldStyle = lipgloss.NewStyle().Bold(true)
)

func styleState(state lifecycle.CheckState) string {
	switch state {
	case lifecycle.CheckOK:
		return okStyle.Render(string(state))
	case lifecycle.CheckWarning:
		return warnStyle.Render(string(state))
	default:
		return errStyle.Render(string(state))
	}
}

// printStyledReport renders the status report for terminals, coloring each
// check by severity.
func printStyledReport(w io.Writer, report *lifecycle.Report) {
	if report.Installed {
		fmt.Fprintf(w, "%s %s (%s) is installed.\n", boldStyle.Render("Firefox"), report.Version, report.Locale)
	} else {
		fmt.Fprintf(w, "%s is not installed.\n", boldStyle.Render("Firefox"))
	}
	for _, c := range report.Checks {
		fmt.Fprintf(w, "  [%s] %s", styleState(c.State), c.Name)
		if c.Detail != "" {
			fmt.Fprintf(w, ": %s", c.Detail)
		}
		fmt.Fprintln(w)
	}
	if report.Healthy {
		fmt.Fprintln(w, okStyle.Render("All checks passed."))
	} else {
		fmt.Fprintln(w, errStyle.Render("Issues found."))
	}
}
