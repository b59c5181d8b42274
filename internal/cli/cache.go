package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/columnview/internal/config"
	"github.com/matzehuels/columnview/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local layering and render cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached layerings and renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.cacheDir()
			if dir == "" {
				printInfo("Cache backend is %s; nothing to clear", c.cfg().Cache.Backend)
				return nil
			}
			count, err := clearDir(dir)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.cacheDir()
			if dir == "" {
				return fmt.Errorf("cache backend %q has no directory", c.cfg().Cache.Backend)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheDir returns the file cache directory, or "" for other backends.
func (c *CLI) cacheDir() string {
	if c.cfg().Cache.Backend != config.CacheFile {
		return ""
	}
	return c.cfg().Cache.Dir
}

// clearDir empties the file cache rooted at dir.
func clearDir(dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return 0, err
	}
	return fc.Clear()
}
