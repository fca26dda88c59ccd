package tree

import "context"

// Source supplies a tree snapshot at call time.
//
// Implementations must return either a complete Tree or an error; partial
// trees are never returned. The returned Tree belongs to the caller.
type Source interface {
	Tree(ctx context.Context) (*Tree, error)
}

// SourceFunc adapts a function to the [Source] interface.
type SourceFunc func(ctx context.Context) (*Tree, error)

// Tree calls f(ctx).
func (f SourceFunc) Tree(ctx context.Context) (*Tree, error) { return f(ctx) }

// StaticSource serves a fixed tree. Each call returns a clone so callers
// cannot disturb later snapshots.
type StaticSource struct {
	t *Tree
}

// NewStaticSource wraps t. A nil tree serves empty snapshots.
func NewStaticSource(t *Tree) *StaticSource {
	if t == nil {
		t = New()
	}
	return &StaticSource{t: t.Clone()}
}

// Tree returns a copy of the wrapped tree.
func (s *StaticSource) Tree(ctx context.Context) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.t.Clone(), nil
}

// SampleSource serves [Sample].
func SampleSource() Source {
	return SourceFunc(func(ctx context.Context) (*Tree, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Sample(), nil
	})
}

var (
	_ Source = SourceFunc(nil)
	_ Source = (*StaticSource)(nil)
)
