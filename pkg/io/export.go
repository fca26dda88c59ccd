package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// WriteJSON encodes t as an indented JSON document.
// The output can be re-imported with [ReadJSON].
func WriteJSON(t *tree.Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toOutDocument(t)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes t as a TOML array of tables.
func WriteTOML(t *tree.Tree, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(toOutDocument(t)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes t in the given format.
func Write(t *tree.Tree, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(t, w)
	case FormatTOML:
		return WriteTOML(t, w)
	default:
		return perrors.New(perrors.ErrCodeInvalidFormat, "unknown tree format: %q", format)
	}
}

// Marshal encodes t into memory.
func Marshal(t *tree.Tree, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(t, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes t to path, inferring the format from the extension.
func Export(t *tree.Tree, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(t, f, format)
}
