package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/tree"
)

// treeOpts holds options for the tree command.
type treeOpts struct {
	expandAll bool
	asJSON    bool
	paths     bool
}

// treeCommand creates the tree command for printing the GraphNode tree.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{}

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the GraphNode tree of a JSON document",
		Long: `Print the GraphNode tree of a JSON document.

Objects and arrays become nodes; scalar members are listed inside their
parent node. Only the root is expanded unless --expand-all is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd, argOrStdin(args), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.expandAll, "expand-all", "a", false, "expand every node")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVarP(&opts.paths, "paths", "p", false, "append the dot-notation path of each row")

	return cmd
}

func (c *CLI) runTree(cmd *cobra.Command, arg string, opts treeOpts) error {
	ctx := cmd.Context()
	in, err := c.readInput(ctx, arg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	ins, err := runner.Inspect(ctx, in.data)
	if err != nil {
		return err
	}

	if opts.asJSON {
		data, err := marshalIndent(ins.Root)
		if err != nil {
			return err
		}
		return c.writeOutput("", data)
	}

	var exp tree.Expansion
	if opts.expandAll {
		exp.ExpandAll(ins.Root)
	}

	var b strings.Builder
	for _, l := range exp.Visible(ins.Root) {
		b.WriteString(formatLine(l, exp.IsExpanded(l.Node)))
		if opts.paths {
			if p := linePath(l); p != "" {
				b.WriteString("  " + StyleDim.Render(p))
			}
		}
		b.WriteByte('\n')
	}
	c.printf("%s", b.String())

	loggerFromContext(ctx).Debug("tree printed", "source", in.name, "nodes", ins.Stats.Nodes)
	return nil
}
