package diagram

import (
	"fmt"
	"strings"

	"github.com/matzehuels/jsonscope/pkg/tree"
)

// ToMermaid returns Mermaid flowchart source for the structural nodes of root.
//
// The output declares the array, object and root classes with the colors of
// p, then one edge per structural parent/child pair:
//
//	node_0 -- "items" --> node_1["items"]
//
// When no edge is emitted and root is an object or array, root is declared on
// its own so the diagram is never empty. Class assignments follow the edges.
func ToMermaid(root *tree.Node, p Palette) string {
	return Build(root).Mermaid(p)
}

// Mermaid renders g as Mermaid flowchart source.
func (g *Graph) Mermaid(p Palette) string {
	var buf strings.Builder
	buf.WriteString("graph TD\n")
	for _, c := range Classes {
		s := p.Style(c)
		fmt.Fprintf(&buf, "    classDef %s fill:%s,stroke:%s,stroke-width:2px,color:%s;\n", c, s.Fill, s.Stroke, s.Color)
	}
	buf.WriteString("\n")

	if len(g.Edges) > 0 {
		labels := make(map[string]string, len(g.Vertices))
		for _, v := range g.Vertices {
			labels[v.ID] = v.Label
		}
		for _, e := range g.Edges {
			fmt.Fprintf(&buf, "%s -- \"%s\" --> %s[\"%s\"]\n", e.From, mermaidLabel(e.Label), e.To, mermaidLabel(labels[e.To]))
		}
	} else if root, ok := g.Root(); ok {
		fmt.Fprintf(&buf, "%s[\"%s\"]\n", root.ID, mermaidLabel(root.Label))
	}

	for _, v := range g.classAssignments() {
		fmt.Fprintf(&buf, "class %s %s;\n", v.ID, v.Class)
	}
	return buf.String()
}

var mermaidEscaper = strings.NewReplacer(
	"#", "#35;",
	`"`, "#quot;",
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

// mermaidLabel escapes text for a double-quoted Mermaid label. Quotes become
// the #quot; entity; a literal # is encoded too so keys can't forge entities.
func mermaidLabel(s string) string {
	return mermaidEscaper.Replace(s)
}
