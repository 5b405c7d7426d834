package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
)

// fmtOpts holds options for the fmt command.
type fmtOpts struct {
	indent  int
	tabs    bool
	compact bool
	write   bool
}

// fmtCommand creates the fmt command for order-preserving pretty printing.
func (c *CLI) fmtCommand() *cobra.Command {
	opts := fmtOpts{indent: 2}

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a JSON document without reordering members",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFmt(cmd, argOrStdin(args), opts)
		},
	}

	cmd.Flags().IntVar(&opts.indent, "indent", opts.indent, "spaces per indentation level")
	cmd.Flags().BoolVar(&opts.tabs, "tabs", false, "indent with tabs")
	cmd.Flags().BoolVarP(&opts.compact, "compact", "c", false, "print on a single line")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the file")

	return cmd
}

func (c *CLI) runFmt(cmd *cobra.Command, arg string, opts fmtOpts) error {
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

	v, err := runner.Parse(ctx, in.data)
	if err != nil {
		return err
	}

	var out []byte
	if opts.compact {
		out = []byte(jsonvalue.Compact(v) + "\n")
	} else {
		indent := strings.Repeat(" ", max(opts.indent, 0))
		if opts.tabs {
			indent = "\t"
		}
		if out, err = jsonvalue.Indent(v, indent); err != nil {
			return err
		}
	}

	dest := ""
	if opts.write && arg != "" && arg != "-" && !strings.HasPrefix(arg, docPrefix) {
		dest = arg
	}
	if err := c.writeOutput(dest, out); err != nil {
		return err
	}
	if dest != "" {
		printSuccess("Formatted %s", dest)
	}
	return nil
}
