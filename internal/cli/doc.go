package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/store"
)

// docCommand creates the document management command.
func (c *CLI) docCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage saved JSON documents",
		Long: `Manage saved JSON documents.

Saved documents can be used anywhere a file is accepted as doc:<id>.`,
	}

	cmd.AddCommand(c.docSaveCommand())
	cmd.AddCommand(c.docListCommand())
	cmd.AddCommand(c.docShowCommand())
	cmd.AddCommand(c.docDeleteCommand())

	return cmd
}

// docSaveCommand creates the "doc save" subcommand.
func (c *CLI) docSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Validate and save a JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			arg := argOrStdin(args)
			in, err := c.readInput(ctx, arg)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, true)
			if err != nil {
				return err
			}
			defer runner.Close()
			if _, err := runner.Parse(ctx, in.data); err != nil {
				return err
			}

			if name == "" {
				name = defaultDocName(arg)
			}
			doc, err := store.NewDocument(name, string(in.data))
			if err != nil {
				return err
			}

			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Save(ctx, doc); err != nil {
				return err
			}

			c.printf("%s\n", doc.ID)
			printSuccess("Saved %s", doc.Name)
			printDetail("Use as %s%s", docPrefix, doc.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "document name (default: file name)")

	return cmd
}

// docListCommand creates the "doc list" subcommand.
func (c *CLI) docListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			docs, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No saved documents")
				return nil
			}
			c.printf("%s\n", docTable(docs, time.Now()))
			return nil
		},
	}
}

// docShowCommand creates the "doc show" subcommand.
func (c *CLI) docShowCommand() *cobra.Command {
	opts := treeOpts{}
	var asTree bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asTree {
				return c.runTree(cmd, docPrefix+args[0], opts)
			}
			in, err := c.readInput(cmd.Context(), docPrefix+args[0])
			if err != nil {
				return err
			}
			data := in.data
			if len(data) > 0 && data[len(data)-1] != '\n' {
				data = append(data, '\n')
			}
			return c.writeOutput("", data)
		},
	}

	cmd.Flags().BoolVarP(&asTree, "tree", "t", false, "print the GraphNode tree instead of the text")
	cmd.Flags().BoolVarP(&opts.expandAll, "expand-all", "a", false, "expand every node (with --tree)")

	return cmd
}

// docDeleteCommand creates the "doc delete" subcommand.
func (c *CLI) docDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete saved documents",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, id := range args {
				if err := s.Delete(ctx, id); err != nil {
					return err
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}

// defaultDocName derives a document name from the input argument.
func defaultDocName(arg string) string {
	if arg == "" || arg == "-" {
		return "stdin-" + time.Now().UTC().Format("20060102-150405")
	}
	return strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
}

func docTable(docs []store.Summary, now time.Time) string {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{d.ID, d.Name, formatSize(d.Size), formatRelativeTime(d.UpdatedAt, now)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	dim := cell.Foreground(colorDim)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Size", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0 || col == 3:
				return dim
			}
			return cell
		}).
		Render()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func formatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
}
