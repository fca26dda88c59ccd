// Package file reads tree snapshots from JSON or TOML files.
package file

import (
	"context"
	"os"

	treeio "github.com/matzehuels/treeplot/pkg/io"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// Source re-reads a file on every call, so edits show up on the next
// render without restarting the viewer.
type Source struct {
	path   string
	format string
}

// New creates a source for path. An empty format is inferred from the
// file extension on each read.
func New(path, format string) *Source {
	return &Source{path: path, format: format}
}

// Path returns the file path.
func (s *Source) Path() string { return s.path }

// Tree reads and decodes the file.
func (s *Source) Tree(ctx context.Context) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.format == "" {
		return treeio.Import(s.path)
	}
	return treeio.ImportFormat(s.path, s.format)
}

// Save writes t to the file in the source format.
func (s *Source) Save(ctx context.Context, t *tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	format := s.format
	if format == "" {
		var err error
		if format, err = treeio.FormatFromPath(s.path); err != nil {
			return err
		}
	}
	data, err := treeio.Marshal(t, format)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Close does nothing.
func (s *Source) Close() error { return nil }

// String describes the source for logs.
func (s *Source) String() string { return "file:" + s.path }

var _ tree.Source = (*Source)(nil)
