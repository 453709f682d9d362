package fetch

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner is a cosmetic terminal indicator scoped to one download. It is
// inert when the writer is not a terminal, and Stop always restores the
// cursor before the download call returns.
type spinner struct {
	w       io.Writer
	message string
	done    chan struct{}
	stopped chan struct{}
}

func startSpinner(w io.Writer, message string) *spinner {
	s := &spinner{w: w, message: message}
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return s
	}

	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	fmt.Fprint(s.w, "\x1b[?25l") // hide cursor

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				fmt.Fprintf(s.w, "\r%s %s", spinnerStyle.Render(spinnerFrames[frame]), s.message)
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
	return s
}

// Stop terminates the spinner, clears its line, and restores the cursor.
// Safe to call more than once.
func (s *spinner) Stop() {
	if s.done == nil {
		return
	}
	close(s.done)
	<-s.stopped
	s.done = nil
	fmt.Fprintf(s.w, "\r\x1b[2K\x1b[?25h") // clear line, show cursor
}
