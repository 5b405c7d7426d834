package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/jsonscope/pkg/diff"
	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
	"github.com/matzehuels/jsonscope/pkg/tree"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, added
	colorYellow = lipgloss.Color("220") // Amber - warnings, modified
	colorRed    = lipgloss.Color("167") // Soft red - errors, removed
	colorBlue   = lipgloss.Color("75")  // Light blue - keys
	colorPurple = lipgloss.Color("141") // Purple - arrays
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleKey    = lipgloss.NewStyle().Foreground(colorBlue)
	styleObject = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleArray  = lipgloss.NewStyle().Foreground(colorPurple).Bold(true)

	styleAdded     = lipgloss.NewStyle().Foreground(colorGreen)
	styleRemoved   = lipgloss.NewStyle().Foreground(colorRed)
	styleModified  = lipgloss.NewStyle().Foreground(colorYellow)
	styleUnchanged = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess   = "✓"
	iconError     = "✗"
	iconWarning   = "!"
	iconInfo      = "›"
	iconArrow     = "→"
	iconCached    = "cached"
	iconFresh     = "fresh"
	iconExpanded  = "▾"
	iconCollapsed = "▸"
)

// statusOut receives status lines so that stdout stays clean for piping.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints tree statistics on a single line.
func printStats(nodes, depth int, cached bool) {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodes)),
		StyleDim.Render(fmt.Sprintf("depth %d", depth)),
		statusStyle.Render(status),
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// =============================================================================
// Tree Rows
// =============================================================================

// formatLine renders one tree row without the cursor column.
func formatLine(l tree.Line, expanded bool) string {
	indent := strings.Repeat("  ", l.Depth)
	if l.Entry != nil {
		return indent + "  " + styleKey.Render(l.Entry.Key) + StyleDim.Render(": ") +
			formatScalar(l.Entry.Value) + " " + StyleDim.Render("("+l.Entry.RawType+")")
	}

	n := l.Node
	switch n.Type {
	case tree.TypePrimitive:
		return indent + "  " + styleKey.Render(n.Key) + StyleDim.Render(": ") + formatScalar(n.Value)
	case tree.TypeArray:
		return indent + marker(n, expanded) + styleArray.Render(n.Key) + StyleDim.Render(fmt.Sprintf(" [%d]", n.MemberCount()))
	}
	return indent + marker(n, expanded) + styleObject.Render(n.Key) + StyleDim.Render(fmt.Sprintf(" {%d}", n.MemberCount()))
}

func marker(n *tree.Node, expanded bool) string {
	if len(n.Children) == 0 && len(n.Content) == 0 {
		return "  "
	}
	if expanded {
		return StyleDim.Render(iconExpanded) + " "
	}
	return StyleDim.Render(iconCollapsed) + " "
}

func formatScalar(v jsonvalue.Value) string {
	return StyleValue.Render(jsonvalue.Compact(v))
}

// linePath returns the dot-notation path of a row.
func linePath(l tree.Line) string {
	if l.Entry != nil {
		return tree.EntryPath(l.Node, l.Entry.Key)
	}
	return tree.DotNotation(l.Node.Path)
}

// =============================================================================
// Diff
// =============================================================================

func changeStyle(t diff.ChangeType) lipgloss.Style {
	switch t {
	case diff.Added:
		return styleAdded
	case diff.Removed:
		return styleRemoved
	case diff.Modified:
		return styleModified
	}
	return styleUnchanged
}
