package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("fetch: %w", context.Canceled), exitInterrupted},
		{"invalid tree", perrors.New(perrors.ErrCodeInvalidTree, "node 1: missing pos"), exitInvalid},
		{"palette", perrors.New(perrors.ErrCodePaletteExhausted, "9 nodes"), exitInvalid},
		{"backend", perrors.New(perrors.ErrCodeSourceUnavailable, "redis"), exitFailure},
		{"plain", errors.New("boom"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
