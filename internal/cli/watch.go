package cli

import (
	"os"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/watch"
)

// watchOpts holds options for the watch command.
type watchOpts struct {
	format string
	theme  string
	output string
}

// watchCommand creates the watch command, which regenerates output whenever
// the input file changes.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Regenerate a diagram whenever a JSON file changes",
		Long: `Watch a JSON file and regenerate its diagram on every save.

With --output the diagram source is written to that file; otherwise a
one-line summary is printed per change. Invalid JSON is reported and the
watcher keeps running. Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "diagram format: mermaid, dot (default from config)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: light, dark (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "file to rewrite on every change")

	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, path string, opts watchOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	dopts := c.diagramOptions(diagramOpts{format: opts.format, theme: opts.theme})
	regenerate := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			printWarning("read %s: %v", path, err)
			return
		}
		ins, err := runner.Inspect(ctx, data)
		if err != nil {
			printError("%s", apperr.UserMessage(err))
			return
		}
		src, cached, err := runner.DiagramFromInspection(ctx, ins, dopts)
		if err != nil {
			printError("%s", apperr.UserMessage(err))
			return
		}
		if opts.output != "" {
			if err := c.writeOutput(opts.output, []byte(src)); err != nil {
				printError("%v", err)
				return
			}
			printSuccess("Updated %s", opts.output)
		} else {
			printSuccess("%s", path)
		}
		printStats(ins.Stats.Nodes, ins.Stats.Depth, cached)
	}

	regenerate()
	printInfo("Watching %s (Ctrl+C to stop)", path)

	return watch.Watch(ctx, path, watch.Options{
		Debounce: c.cfg.Watch.Debounce.Duration,
		Logger:   c.Logger,
	}, func(ev watch.Event) {
		if ev.Removed {
			printWarning("%s was removed", ev.Path)
			return
		}
		regenerate()
	})
}
