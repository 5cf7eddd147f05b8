package decay

import (
	"fmt"
	"io"
)

// logWriter is the destination for diagnostic output. Nil disables it.
var logWriter io.Writer

// SetLogWriter sets the destination for builder and sampler diagnostics
// (generated modes, renormalization notices, envelope rescales). Passing
// nil silences them.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// logf writes a formatted diagnostic message.
func logf(format string, args ...any) {
	if logWriter == nil {
		return
	}
	fmt.Fprintf(logWriter, format+"\n", args...)
}
