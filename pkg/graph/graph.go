package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/treeplot/pkg/adapter"
)

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts adapter output to indented JSON.
func Marshal(g adapter.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes adapter output as JSON to w.
func Write(g adapter.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromAdapter(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON plot and converts it back into adapter output.
func Read(r io.Reader) (adapter.Graph, error) {
	var p Plot
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return adapter.Graph{}, fmt.Errorf("decode: %w", err)
	}
	return p.ToAdapter()
}

// Unmarshal decodes JSON bytes into a Plot without converting it.
func Unmarshal(data []byte) (Plot, error) {
	var p Plot
	if err := json.Unmarshal(data, &p); err != nil {
		return Plot{}, err
	}
	return p, nil
}
