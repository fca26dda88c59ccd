package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// spinnerOut receives spinner frames. Frames go to stderr so piped output
// stays clean.
var spinnerOut io.Writer = os.Stderr

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

const spinnerInterval = 80 * time.Millisecond

// withSpinner animates msg on spinnerOut until fn returns, then erases the
// line. fn runs on the calling goroutine.
func withSpinner(ctx context.Context, msg string, fn func() error) error {
	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				fmt.Fprintf(spinnerOut, "\r%s\r", strings.Repeat(" ", len(msg)+2))
				return
			case <-tick.C:
				frame := string(spinnerFrames[i%len(spinnerFrames)])
				fmt.Fprintf(spinnerOut, "\r%s %s", StyleTitle.Render(frame), StyleDim.Render(msg))
			}
		}
	}()

	err := fn()
	cancel()
	<-stopped
	return err
}
