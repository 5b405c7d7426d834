package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/pipeline"
)

// diagramOpts holds options for the diagram command.
type diagramOpts struct {
	format  string
	theme   string
	output  string
	noCache bool
	refresh bool
}

// diagramCommand creates the diagram command for emitting Mermaid or DOT source.
func (c *CLI) diagramCommand() *cobra.Command {
	opts := diagramOpts{}

	cmd := &cobra.Command{
		Use:   "diagram [file]",
		Short: "Generate Mermaid or Graphviz DOT source for a JSON document",
		Long: `Generate diagram source for a JSON document.

Every object and array becomes a box listing its scalar members; edges
connect parents to their nested containers. Results are cached by document
content, format and theme.`,
		Example: `  jsonscope diagram data.json
  jsonscope diagram -f dot --theme dark data.json -o data.dot
  curl -s https://api.example.com/users | jsonscope diagram`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiagram(cmd, argOrStdin(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "diagram format: mermaid, dot (default from config)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: light, dark (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results but store the new one")

	return cmd
}

func (c *CLI) runDiagram(cmd *cobra.Command, arg string, opts diagramOpts) error {
	ctx := cmd.Context()
	in, err := c.readInput(ctx, arg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	ins, err := runner.Inspect(ctx, in.data)
	if err != nil {
		return err
	}

	src, cached, err := runner.DiagramFromInspection(ctx, ins, c.diagramOptions(opts))
	if err != nil {
		return err
	}
	if err := c.writeOutput(opts.output, []byte(src)); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Diagram generated")
		printFile(opts.output)
		printStats(ins.Stats.Nodes, ins.Stats.Depth, cached)
	}
	return nil
}

// diagramOptions fills unset flags from the config.
func (c *CLI) diagramOptions(opts diagramOpts) pipeline.DiagramOptions {
	o := pipeline.DiagramOptions{Format: opts.format, Theme: opts.theme, Refresh: opts.refresh}
	if o.Format == "" {
		o.Format = c.cfg.Diagram.Format
	}
	if o.Theme == "" {
		o.Theme = c.cfg.Diagram.Theme
	}
	return o
}
