package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listSearchStyle   = lipgloss.NewStyle().Foreground(colorYellow)
)

// exploreCommand creates the explore command, an interactive tree browser.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse a JSON document interactively",
		Long: `Browse the GraphNode tree of a JSON document in the terminal.

Keys:
  ↑/↓ j/k    move            enter/space  toggle node
  →/l  ←/h   expand/collapse  e/c          expand/collapse all
  /          find key        n            next match
  y          show path       q            quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			arg := argOrStdin(args)
			if arg == "" || arg == "-" {
				return fmt.Errorf("explore needs a file or doc:<id>; stdin is used for keyboard input")
			}
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

			p := tea.NewProgram(NewExplorerModel(in.name, ins.Root), tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// ExplorerModel - Interactive tree browser
// =============================================================================

// ExplorerModel is the bubbletea model for browsing a GraphNode tree.
type ExplorerModel struct {
	Title  string
	Root   *tree.Node
	Exp    *tree.Expansion
	Lines  []tree.Line
	Cursor int
	Offset int
	Height int

	searching bool
	query     string
	matches   []*tree.Node
	match     int
	status    string
}

// NewExplorerModel creates an explorer with only the root expanded.
func NewExplorerModel(title string, root *tree.Node) ExplorerModel {
	m := ExplorerModel{
		Title:  title,
		Root:   root,
		Exp:    &tree.Expansion{},
		Height: 20,
	}
	m.refresh()
	return m
}

func (m ExplorerModel) Init() tea.Cmd {
	return nil
}

func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "enter", " ":
			if n := m.currentNode(); n != nil {
				m.Exp.Toggle(n)
				m.refresh()
			}
		case "right", "l":
			if n := m.currentNode(); n != nil {
				m.Exp.Set(n, true)
				m.refresh()
			}
		case "left", "h":
			m.collapseCurrent()
		case "e":
			m.Exp.ExpandAll(m.Root)
			m.refresh()
		case "c":
			m.Exp.CollapseAll(m.Root)
			m.refresh()
			m.Cursor, m.Offset = 0, 0
		case "/":
			m.searching = true
			m.query = ""
		case "n":
			m.nextMatch()
		case "y":
			if len(m.Lines) > 0 {
				if p := linePath(m.Lines[m.Cursor]); p != "" {
					m.status = "path: " + p
				} else {
					m.status = "path: (root)"
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll()
	}
	return m, nil
}

func (m ExplorerModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.query = ""
	case tea.KeyEnter:
		m.searching = false
		m.matches = tree.Search(m.Root, m.query)
		m.match = -1
		if len(m.matches) == 0 {
			m.status = fmt.Sprintf("no key matches %q", m.query)
			return m, nil
		}
		m.nextMatch()
	case tea.KeyBackspace:
		if len(m.query) > 0 {
			r := []rune(m.query)
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	}
	return m, nil
}

// nextMatch moves the cursor to the next search hit, expanding its
// ancestors so it is visible.
func (m *ExplorerModel) nextMatch() {
	if len(m.matches) == 0 {
		return
	}
	m.match = (m.match + 1) % len(m.matches)
	target := m.matches[m.match]

	for p := tree.Parent(m.Root, target); p != nil; p = tree.Parent(m.Root, p) {
		m.Exp.Set(p, true)
	}
	m.Exp.Select(target)
	m.refresh()

	for i, l := range m.Lines {
		if l.Entry == nil && l.Node == target {
			m.Cursor = i
			break
		}
	}
	m.scroll()
	m.status = fmt.Sprintf("match %d/%d: %s", m.match+1, len(m.matches), tree.DotNotation(target.Path))
}

func (m *ExplorerModel) collapseCurrent() {
	if len(m.Lines) == 0 {
		return
	}
	l := m.Lines[m.Cursor]
	n := l.Node
	if l.Entry == nil && m.Exp.IsExpanded(n) && n.MemberCount() > 0 {
		m.Exp.Set(n, false)
		m.refresh()
		return
	}
	// Collapsed node or content row: jump to the owning header.
	target := n
	if l.Entry == nil {
		if target = tree.Parent(m.Root, n); target == nil {
			return
		}
	}
	for i, row := range m.Lines {
		if row.Entry == nil && row.Node == target {
			m.Cursor = i
			break
		}
	}
	m.scroll()
}

// currentNode returns the node under the cursor when the row is a header.
func (m ExplorerModel) currentNode() *tree.Node {
	if len(m.Lines) == 0 {
		return nil
	}
	l := m.Lines[m.Cursor]
	if l.Entry != nil {
		return nil
	}
	return l.Node
}

func (m *ExplorerModel) move(delta int) {
	m.Cursor = min(max(m.Cursor+delta, 0), max(len(m.Lines)-1, 0))
	m.scroll()
}

func (m *ExplorerModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// refresh recomputes the visible rows and keeps the cursor in range.
func (m *ExplorerModel) refresh() {
	m.Lines = m.Exp.Visible(m.Root)
	if m.Cursor >= len(m.Lines) {
		m.Cursor = max(len(m.Lines)-1, 0)
	}
	m.scroll()
}

func (m ExplorerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ toggle  e/c all  / find  y path  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Lines))
	for i := m.Offset; i < end; i++ {
		l := m.Lines[i]
		row := formatLine(l, m.Exp.IsExpanded(l.Node))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▌") + row)
		} else {
			b.WriteString(" " + row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.searching:
		b.WriteString(listSearchStyle.Render("/" + m.query + "█"))
	case m.status != "":
		b.WriteString(listDimStyle.Render(m.status))
	default:
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d", m.Cursor+1, len(m.Lines))))
	}
	b.WriteString("\n")
	return b.String()
}
