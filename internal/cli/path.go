package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/tree"
)

// pathCommand creates the path command, which converts path segments to
// dot notation.
func (c *CLI) pathCommand() *cobra.Command {
	var sep string

	cmd := &cobra.Command{
		Use:   "path <segment>...",
		Short: "Print the dot notation for a list of path segments",
		Long: `Print the dot notation for a list of path segments.

Numeric segments after the first become [n]; all others are joined with
dots. A leading "root" segment is dropped. A single argument can also be
split with --sep.`,
		Example: `  jsonscope path root users 0 name     # users[0].name
  jsonscope path --sep / root/items/2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segs := args
			if sep != "" && len(args) == 1 {
				segs = strings.Split(args[0], sep)
			}
			c.printf("%s\n", tree.DotNotation(segs))
			return nil
		},
	}

	cmd.Flags().StringVar(&sep, "sep", "", "split a single argument on this separator")

	return cmd
}
