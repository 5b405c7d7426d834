package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/cache"
	"github.com/matzehuels/jsonscope/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the diagram and image cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached diagrams and images",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Cache.Backend == config.BackendRedis {
				return c.clearRedis(cmd)
			}

			dir, err := c.cfg.CacheDir()
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) clearRedis(cmd *cobra.Command) error {
	ctx := cmd.Context()
	rc := c.cfg.Redis
	ch, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
		Prefix:   rc.Prefix,
	})
	if err != nil {
		return err
	}
	defer ch.Close()

	count, err := ch.Clear(ctx)
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached entries", count)
	printDetail("Redis: %s (prefix %s)", rc.Addr, rc.Prefix)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cfg.CacheDir()
			if err != nil {
				return err
			}
			c.printf("%s\n", dir)
			return nil
		},
	}
}
