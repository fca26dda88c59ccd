package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// timed starts a clock and returns a func that logs msg at debug level
// with keyvals and the elapsed time under "took".
func timed(l *log.Logger, msg string, keyvals ...any) func() {
	start := time.Now()
	return func() {
		l.Debug(msg, append(keyvals, "took", time.Since(start).Round(time.Millisecond))...)
	}
}
