package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/diff"
)

// diffOpts holds options for the diff command.
type diffOpts struct {
	all    bool
	asJSON bool
}

// diffCommand creates the diff command for structural comparison.
func (c *CLI) diffCommand() *cobra.Command {
	opts := diffOpts{}

	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two JSON documents structurally",
		Long: `Compare two JSON documents structurally.

Arrays are compared index by index and objects member by member. Unchanged
locations are hidden unless --all is given; the summary always counts them.
Either side may be "-" for stdin or doc:<id> for a saved document.`,
		Example: `  jsonscope diff before.json after.json
  jsonscope diff --json doc:3f2a... current.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiff(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include unchanged locations")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runDiff(cmd *cobra.Command, leftArg, rightArg string, opts diffOpts) error {
	ctx := cmd.Context()
	if leftArg == "-" && rightArg == "-" {
		return fmt.Errorf("only one side can be read from stdin")
	}

	left, err := c.readInput(ctx, leftArg)
	if err != nil {
		return err
	}
	right, err := c.readInput(ctx, rightArg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Compare(ctx, left.data, right.data)
	if err != nil {
		return err
	}
	res = res.Filtered(!opts.all)

	if opts.asJSON {
		data, err := marshalIndent(res)
		if err != nil {
			return err
		}
		return c.writeOutput("", data)
	}

	if len(res.Changes) > 0 {
		c.printf("%s\n", diffTable(res.Changes))
	}
	c.printf("%s\n", formatDiffStats(res.Stats))
	return nil
}

// diffTable renders changes as a bordered table.
func diffTable(changes []diff.Change) string {
	rows := make([][]string, 0, len(changes))
	for _, ch := range changes {
		rows = append(rows, []string{ch.Path, string(ch.Type), diff.LeftCell(ch), diff.RightCell(ch)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Path", "Type", "Left", "Right").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 1 && row >= 0 && row < len(changes) {
				return changeStyle(changes[row].Type).Padding(0, 1)
			}
			return cell
		})

	return t.Render()
}

func formatDiffStats(s diff.Stats) string {
	if s.Identical() {
		return styleIconSuccess.Render(iconSuccess) + " documents are identical " +
			StyleDim.Render(fmt.Sprintf("(%d unchanged)", s.Unchanged))
	}
	parts := []string{
		styleAdded.Render(fmt.Sprintf("+%d added", s.Added)),
		styleRemoved.Render(fmt.Sprintf("-%d removed", s.Removed)),
		styleModified.Render(fmt.Sprintf("~%d modified", s.Modified)),
		styleUnchanged.Render(fmt.Sprintf("%d unchanged", s.Unchanged)),
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}
