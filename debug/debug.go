// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — Cold-path diagnostic logging
//
// Purpose:
//   - Logs setup milestones and failures to stderr as "PREFIX: message" lines.
//   - Used only outside the timed region: arming, binding, reporting.
//
// Notes:
//   - Avoids fmt.Sprintf; messages are plain concatenation.
//   - DropMessage is silent unless verbose output was requested.
//
// ⚠️ Never invoke in spin loops — any syscall there lands in the measurement.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import (
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	verbose bool
)

// SetOutput redirects diagnostics and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// SetVerbose enables or disables DropMessage output.
func SetVerbose(on bool) {
	mu.Lock()
	verbose = on
	mu.Unlock()
}

// DropError logs an error line. With a nil err only the prefix is printed.
// Always emitted, regardless of verbosity.
func DropError(prefix string, err error) {
	if err != nil {
		write(prefix + ": " + err.Error() + "\n")
		return
	}
	write(prefix + "\n")
}

// DropMessage logs a diagnostic line when verbose output is enabled.
func DropMessage(prefix, message string) {
	mu.Lock()
	on := verbose
	mu.Unlock()
	if !on {
		return
	}
	write(prefix + ": " + message + "\n")
}

func write(msg string) {
	mu.Lock()
	_, _ = io.WriteString(out, msg)
	mu.Unlock()
}
