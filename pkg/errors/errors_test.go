package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidTree, "node %s: missing pos", "7"), "INVALID_TREE: node 7: missing pos"},
		{Wrap(ErrCodeSourceUnavailable, errors.New("dial tcp: refused"), "redis %s", "tree"), "SOURCE_UNAVAILABLE: redis tree: dial tcp: refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(ErrCodeSourceUnavailable, cause, "mongo find")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestSentinelMatchesByCode(t *testing.T) {
	sentinel := New(ErrCodePaletteExhausted, "palette exhausted")
	err := fmt.Errorf("%w: 9 nodes, 8 colors", sentinel)

	if !errors.Is(err, sentinel) {
		t.Error("wrapped sentinel should match")
	}
	if !errors.Is(New(ErrCodePaletteExhausted, "other text"), sentinel) {
		t.Error("same code should match the sentinel")
	}
	if errors.Is(New(ErrCodeInvalidPalette, "x"), sentinel) {
		t.Error("different code should not match")
	}
}

func TestIsAndGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeInvalidTree, "x"), ErrCodeInvalidTree},
		{"outermost wins", Wrap(ErrCodeSourceUnavailable, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeSourceUnavailable},
		{"fmt wrapped", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "tree.json")), ErrCodeFileNotFound},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
			if tt.want != "" && !Is(tt.err, tt.want) {
				t.Errorf("Is(%q) = false", tt.want)
			}
			if Is(tt.err, ErrCodeInternal) {
				t.Error("Is(INTERNAL_ERROR) = true")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(Wrap(ErrCodeSourceUnavailable, errors.New("secret dsn"), "source unavailable")); got != "source unavailable" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidTree, "node 1: missing pos"), http.StatusUnprocessableEntity},
		{New(ErrCodePaletteExhausted, "9 nodes, 8 colors"), http.StatusUnprocessableEntity},
		{New(ErrCodeFileNotFound, "tree.json"), http.StatusNotFound},
		{Wrap(ErrCodeSourceUnavailable, errors.New("dial tcp"), "redis"), http.StatusBadGateway},
		{New(ErrCodeUnsupported, "format"), http.StatusNotImplemented},
		{New(ErrCodeInternal, "render"), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
