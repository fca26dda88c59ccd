package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/pipeline"
	"github.com/matzehuels/treeplot/pkg/source"
)

// Environment variables read on top of the config file.
const (
	envRedisURL = "TREEPLOT_REDIS_URL"
	envMongoURI = "TREEPLOT_MONGO_URI"
	envMongoDB  = "TREEPLOT_MONGO_DB"
)

// Config is the content of config.toml.
//
//	source = "file:tree.toml"
//
//	[plot]
//	palette = "Category10"
//	overflow = "cycle"
//
//	[cache]
//	backend = "redis"
//
//	[redis]
//	url = "redis://localhost:6379/0"
type Config struct {
	Source string           `toml:"source"`
	Plot   pipeline.Options `toml:"plot"`
	Cache  CacheConfig      `toml:"cache"`
	Redis  RedisConfig      `toml:"redis"`
	Mongo  MongoConfig      `toml:"mongo"`
}

// CacheConfig selects the raster artifact cache.
type CacheConfig struct {
	Backend string `toml:"backend"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL string `toml:"url"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

func defaultConfig() Config {
	return Config{
		Source: source.KindSample,
		Cache:  CacheConfig{Backend: cacheBackendFile},
	}
}

// readConfig decodes the file at path over the defaults. A missing file is
// only an error when the path was given explicitly.
func readConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return defaultConfig(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, perrors.New(perrors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// applyEnv lets environment variables override backend settings.
func (c *Config) applyEnv() {
	if v := os.Getenv(envRedisURL); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv(envMongoURI); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv(envMongoDB); v != "" {
		c.Mongo.Database = v
	}
}

func (c *Config) sourceConfig() source.Config {
	return source.Config{
		RedisURL:      c.Redis.URL,
		MongoURI:      c.Mongo.URI,
		MongoDatabase: c.Mongo.Database,
	}
}
