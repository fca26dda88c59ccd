package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	l.Debug("hidden")
	l.Info("shown", "nodes", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "nodes=4") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.DebugLevel).Debug("tick")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("unexpected timestamp prefix: %q", buf.String())
	}
}

func TestTimed(t *testing.T) {
	tests := []struct {
		level log.Level
		want  bool
	}{
		{log.DebugLevel, true},
		{log.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			done := timed(newLogger(&buf, tt.level), "fetched", "source", "sample")
			time.Sleep(2 * time.Millisecond)
			done()

			out := buf.String()
			got := strings.Contains(out, "fetched") && strings.Contains(out, "source=sample") && strings.Contains(out, "took=")
			if got != tt.want {
				t.Errorf("logged=%v, want %v: %q", got, tt.want, out)
			}
		})
	}
}
