package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// Supported document formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml", ".tml":
		return FormatTOML, nil
	default:
		return "", perrors.New(perrors.ErrCodeInvalidFormat, "cannot infer tree format from %q (use .json or .toml)", path)
	}
}

// ReadJSON decodes a JSON tree document from r.
//
// ReadJSON returns an error if the JSON is malformed, if any record lacks
// links or pos, if pos is not a pair, or if an identifier is empty or
// repeated. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tree.Tree, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "decode json")
	}
	return buildTree(doc)
}

// ReadTOML decodes a TOML tree document from r with the same validation as
// [ReadJSON].
func ReadTOML(r io.Reader) (*tree.Tree, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "decode toml")
	}
	return buildTree(doc)
}

// Read decodes a document in the given format.
func Read(r io.Reader, format string) (*tree.Tree, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unknown tree format: %q", format)
	}
}

// Unmarshal decodes an in-memory document.
func Unmarshal(data []byte, format string) (*tree.Tree, error) {
	return Read(bytes.NewReader(data), format)
}

// Import reads the file at path, inferring the format from its extension.
// A missing file yields a FILE_NOT_FOUND error.
func Import(path string) (*tree.Tree, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return ImportFormat(path, format)
}

// ImportFormat reads the file at path in an explicit format.
func ImportFormat(path, format string) (*tree.Tree, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
