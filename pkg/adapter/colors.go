package adapter

import (
	"fmt"
	"strings"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/palette"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// DefaultFallbackColor is the fill used past the end of the palette under
// [OverflowFallback].
const DefaultFallbackColor = "#abdda4"

// ErrPaletteExhausted reports a tree with more nodes than palette colors.
// Match it with errors.Is, or check for the PALETTE_EXHAUSTED code.
var ErrPaletteExhausted = perrors.New(perrors.ErrCodePaletteExhausted, "palette exhausted")

// OverflowPolicy decides how nodes beyond the palette length are colored.
type OverflowPolicy int

const (
	// OverflowError fails with ErrPaletteExhausted.
	OverflowError OverflowPolicy = iota
	// OverflowCycle reuses colors from the start of the palette.
	OverflowCycle
	// OverflowFallback gives every remaining node the fallback color.
	OverflowFallback
)

var policyNames = map[OverflowPolicy]string{
	OverflowError:    "error",
	OverflowCycle:    "cycle",
	OverflowFallback: "fallback",
}

func (p OverflowPolicy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("OverflowPolicy(%d)", int(p))
}

// ParseOverflowPolicy parses "error", "cycle" or "fallback".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return OverflowError, nil
	case "cycle", "wrap":
		return OverflowCycle, nil
	case "fallback":
		return OverflowFallback, nil
	default:
		return 0, perrors.New(perrors.ErrCodeInvalidInput, "unknown overflow policy %q (use error, cycle or fallback)", s)
	}
}

// Colors assigns p[i] to order[i].
//
// An empty order yields an empty map regardless of the palette. Otherwise an
// empty palette is an error under every policy except [OverflowFallback].
func Colors(order []tree.ID, p palette.Palette, policy OverflowPolicy, fallback string) (map[tree.ID]string, error) {
	out := make(map[tree.ID]string, len(order))
	if len(order) == 0 {
		return out, nil
	}
	if len(order) > len(p) {
		switch {
		case policy == OverflowFallback:
		case policy == OverflowCycle && len(p) > 0:
		default:
			return nil, fmt.Errorf("%w: %d nodes, %d colors (policy %s)", ErrPaletteExhausted, len(order), len(p), policy)
		}
	}
	if fallback == "" {
		fallback = DefaultFallbackColor
	}
	for i, id := range order {
		switch {
		case i < len(p):
			out[id] = p[i]
		case policy == OverflowCycle:
			out[id] = p[i%len(p)]
		default:
			out[id] = fallback
		}
	}
	return out, nil
}
