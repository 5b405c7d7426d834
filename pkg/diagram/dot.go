package diagram

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/jsonscope/pkg/tree"
)

// ToDOT returns Graphviz DOT source with the same nodes, edges and classes
// as [ToMermaid]. The result can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(root *tree.Node, p Palette) string {
	return Build(root).DOT(p)
}

// DOT renders g as Graphviz DOT source.
func (g *Graph) DOT(p Palette) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", penwidth=2, fontsize=14, margin=\"0.2,0.1\"];\n")
	fmt.Fprintf(&buf, "  edge [color=%s, fontcolor=%s, fontsize=12];\n", dotString(p.Root.Stroke), dotString(p.Root.Color))
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, v := range g.classAssignments() {
		s := p.Style(v.Class)
		attrs := []string{
			"label=" + dotString(v.Label),
			"class=" + dotString(string(v.Class)),
			"fillcolor=" + dotString(s.Fill),
			"color=" + dotString(s.Stroke),
			"fontcolor=" + dotString(s.Color),
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", dotString(v.ID), strings.Join(attrs, ", "))
	}

	if len(g.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %s -> %s [label=%s];\n", dotString(e.From), dotString(e.To), dotString(e.Label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// dotString quotes s as a DOT string literal.
func dotString(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
