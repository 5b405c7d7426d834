package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/pipeline"
)

// renderOpts holds options for the render command.
type renderOpts struct {
	format  string
	theme   string
	output  string
	noCache bool
	refresh bool
}

// renderCommand creates the render command for producing SVG or PNG images.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a JSON document as an SVG or PNG diagram",
		Long: `Render a JSON document as an image using Graphviz.

The output path defaults to the input name with the format extension.
Reading from stdin requires --output.`,
		Example: `  jsonscope render data.json
  jsonscope render -f png --theme dark data.json -o data.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, argOrStdin(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.DefaultRenderFormat, "image format: svg, png")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: light, dark (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results but store the new one")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, arg string, opts renderOpts) error {
	ctx := cmd.Context()
	in, err := c.readInput(ctx, arg)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output, err = defaultOutput(arg, opts.format)
		if err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	theme := opts.theme
	if theme == "" {
		theme = c.cfg.Diagram.Theme
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Rendering "+in.name+"...")
	spinner.Start()
	img, cached, err := runner.RenderWithCacheInfo(ctx, in.data, pipeline.RenderOptions{
		Format:  opts.format,
		Theme:   theme,
		Refresh: opts.refresh,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := c.writeOutput(output, img); err != nil {
		return err
	}

	prog.done("Rendered " + output)
	printSuccess("Rendered %s image", strings.ToUpper(opts.format))
	printFile(output)
	if cached {
		printDetail("served from cache")
	}
	return nil
}

// defaultOutput derives an image path from the input path.
func defaultOutput(arg, format string) (string, error) {
	if arg == "" || arg == "-" || strings.HasPrefix(arg, docPrefix) {
		return "", fmt.Errorf("--output is required when reading from %s", sourceLabel(arg))
	}
	base := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
	return base + "." + format, nil
}

func sourceLabel(arg string) string {
	if strings.HasPrefix(arg, docPrefix) {
		return "a saved document"
	}
	return "stdin"
}
