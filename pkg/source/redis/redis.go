// Package redis stores and loads tree snapshots in Redis.
//
// A snapshot is the JSON document produced by pkg/io, stored as a plain
// string value under one key. Writers replace the whole value, so readers
// always see a complete tree.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	treeio "github.com/matzehuels/treeplot/pkg/io"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// DefaultKey is used when no key is given.
const DefaultKey = "treeplot:tree"

// Source reads the snapshot stored under a key.
type Source struct {
	client *redis.Client
	key    string
	owned  bool
}

// New wraps an existing client. Close leaves the client open.
func New(client *redis.Client, key string) *Source {
	if key == "" {
		key = DefaultKey
	}
	return &Source{client: client, key: key}
}

// Dial connects to the server at url (redis://[:password@]host:port/db).
// The connection is checked with PING before returning.
func Dial(ctx context.Context, url, key string) (*Source, error) {
	if err := perrors.ValidateURL(url, "redis", "rediss", "unix"); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidSource, err, "redis url")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidSource, err, "redis url")
	}
	opts.DialTimeout = 5 * time.Second
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "redis %s", opts.Addr)
	}
	s := New(client, key)
	s.owned = true
	return s, nil
}

// Key returns the Redis key holding the snapshot.
func (s *Source) Key() string { return s.key }

// Tree fetches and decodes the snapshot. A missing key is NOT_FOUND.
func (s *Source) Tree(ctx context.Context) (*tree.Tree, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, perrors.New(perrors.ErrCodeNotFound, "redis key %q does not exist", s.key)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "redis get %s", s.key)
	}
	return treeio.Unmarshal(data, treeio.FormatJSON)
}

// Save replaces the snapshot with t.
func (s *Source) Save(ctx context.Context, t *tree.Tree) error {
	data, err := treeio.Marshal(t, treeio.FormatJSON)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "redis set %s", s.key)
	}
	return nil
}

// Close closes the client if Dial created it.
func (s *Source) Close() error {
	if s.owned {
		return s.client.Close()
	}
	return nil
}

// String describes the source for logs.
func (s *Source) String() string { return "redis:" + s.key }

var _ tree.Source = (*Source)(nil)
