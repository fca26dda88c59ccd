package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeplot/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the PDF/PNG artifact cache",
		Long: `Raster artifacts are cached by the hash of the SVG they were converted
from. The file backend keeps them under the XDG cache directory; the redis
backend lets entries expire on their own.`,
	}
	cmd.AddCommand(
		&cobra.Command{Use: "info", Short: "Show the cache backend and its size", Args: cobra.NoArgs, RunE: c.runCacheInfo},
		&cobra.Command{Use: "clear", Short: "Remove all cached artifacts", Args: cobra.NoArgs, RunE: c.runCacheClear},
		&cobra.Command{Use: "path", Short: "Print the cache directory path", Args: cobra.NoArgs, RunE: c.runCachePath},
	)
	return cmd
}

// fileCache opens the local artifact cache.
func fileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) runCacheInfo(cmd *cobra.Command, _ []string) error {
	backend := c.config.Cache.Backend
	if backend == "" {
		backend = cacheBackendFile
	}
	printInfo("Backend: %s", backend)
	if backend != cacheBackendFile {
		return nil
	}
	fc, err := fileCache()
	if err != nil {
		return err
	}
	n, size, err := fc.Stat()
	if err != nil {
		return err
	}
	printDetail("Directory: %s", fc.Dir())
	printDetail("%d artifacts, %.1f KiB", n, float64(size)/1024)
	return nil
}

func (c *CLI) runCacheClear(cmd *cobra.Command, _ []string) error {
	if c.config.Cache.Backend == cacheBackendRedis {
		printWarning("Redis cache entries expire on their own; nothing to clear locally")
		return nil
	}
	fc, err := fileCache()
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	switch {
	case err != nil:
		return err
	case n == 0:
		printInfo("Cache is empty")
	default:
		printSuccess("Cleared %d cached artifacts", n)
		printDetail("Directory: %s", fc.Dir())
	}
	return nil
}

func (c *CLI) runCachePath(cmd *cobra.Command, _ []string) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}
