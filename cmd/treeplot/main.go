// Command treeplot draws positioned trees as node-link plots.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/treeplot/internal/cli"
	perrors "github.com/matzehuels/treeplot/pkg/errors"
)

// Exit codes. Input errors use 2 so scripts can tell them from backend
// failures.
const (
	exitFailure     = 1
	exitInvalid     = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
	root.SilenceErrors = true

	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "treeplot:", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case perrors.HTTPStatus(err) == http.StatusUnprocessableEntity:
		return exitInvalid
	default:
		return exitFailure
	}
}
