// Package progress renders a live spinner for silent runs.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

const updateInterval = 50 * time.Millisecond

// Spinner wraps progressbar in indeterminate mode with enabled/disabled
// handling. All methods are no-ops when disabled, so callers never branch.
type Spinner struct {
	bar *progressbar.ProgressBar
}

// New creates a spinner. If enabled=false, returns a Spinner where all
// methods are no-ops. A sync run has no cheap total to count toward, so the
// display is a spinner plus a live description rather than a bar.
func New(enabled bool) *Spinner {
	if !enabled {
		return &Spinner{}
	}
	return &Spinner{bar: progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(false),
	)}
}

// Describe updates the spinner description.
func (s *Spinner) Describe(st fmt.Stringer) {
	if s.bar != nil {
		s.bar.Describe(st.String())
	}
}

// Finish clears the spinner and prints a final line.
func (s *Spinner) Finish(st fmt.Stringer) {
	if s.bar != nil {
		_ = s.bar.Finish()
		fmt.Fprintln(os.Stderr, "✔ "+st.String())
	}
}
