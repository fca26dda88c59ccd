package source

import (
	"context"
	"fmt"
	"strings"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	treeio "github.com/matzehuels/treeplot/pkg/io"
	"github.com/matzehuels/treeplot/pkg/source/file"
	"github.com/matzehuels/treeplot/pkg/source/mongo"
	"github.com/matzehuels/treeplot/pkg/source/redis"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// Backend kinds.
const (
	KindSample = "sample"
	KindFile   = "file"
	KindRedis  = "redis"
	KindMongo  = "mongo"
)

// Spec is a parsed source specification.
type Spec struct {
	Kind   string
	Target string
}

func (s Spec) String() string {
	if s.Target == "" {
		return s.Kind
	}
	return s.Kind + ":" + s.Target
}

// ParseSpec parses "kind:target". An empty string means sample; a value
// without a known kind prefix is treated as a file path when it has a
// .json or .toml extension.
func ParseSpec(s string) (Spec, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", KindSample:
		return Spec{Kind: KindSample}, nil
	case KindRedis, KindMongo:
		return Spec{Kind: s}, nil
	}
	kind, target, ok := strings.Cut(s, ":")
	if ok {
		switch kind {
		case KindFile, KindRedis, KindMongo:
			if target == "" && kind == KindFile {
				return Spec{}, perrors.New(perrors.ErrCodeInvalidSource, "file source needs a path: file:PATH")
			}
			return Spec{Kind: kind, Target: target}, nil
		}
	}
	if _, err := treeio.FormatFromPath(s); err == nil {
		return Spec{Kind: KindFile, Target: s}, nil
	}
	return Spec{}, perrors.New(perrors.ErrCodeInvalidSource,
		"unknown source %q (use sample, file:PATH, redis:KEY or mongo:COLLECTION)", s)
}

// Config holds backend connection settings.
type Config struct {
	RedisURL      string
	MongoURI      string
	MongoDatabase string
	// Format overrides extension-based detection for file sources.
	Format string
}

// Source is a tree source that may hold a connection.
type Source interface {
	tree.Source
	Close() error
}

// Saver is implemented by backends that can store a snapshot.
type Saver interface {
	Save(ctx context.Context, t *tree.Tree) error
}

// sampleSource serves the built-in tree.
type sampleSource struct{ tree.Source }

func (sampleSource) Close() error   { return nil }
func (sampleSource) String() string { return KindSample }

// Open connects the backend named by spec. Network backends are dialed
// and pinged here, so an unreachable server fails before any rendering.
func Open(ctx context.Context, spec Spec, cfg Config) (Source, error) {
	switch spec.Kind {
	case KindSample:
		return sampleSource{tree.SampleSource()}, nil
	case KindFile:
		return file.New(spec.Target, cfg.Format), nil
	case KindRedis:
		if cfg.RedisURL == "" {
			return nil, perrors.New(perrors.ErrCodeInvalidSource, "redis source needs a server URL (set TREEPLOT_REDIS_URL)")
		}
		s, err := redis.Dial(ctx, cfg.RedisURL, spec.Target)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindMongo:
		if cfg.MongoURI == "" {
			return nil, perrors.New(perrors.ErrCodeInvalidSource, "mongo source needs a connection URI (set TREEPLOT_MONGO_URI)")
		}
		s, err := mongo.Dial(ctx, cfg.MongoURI, cfg.MongoDatabase, spec.Target)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidSource, "unknown source kind %q", spec.Kind)
	}
}

// Describe returns a log-friendly name for src.
func Describe(src tree.Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}
