package diagram_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/jsonscope/pkg/diagram"
	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
	"github.com/matzehuels/jsonscope/pkg/tree"
)

func ExampleToMermaid() {
	root := tree.Transform(jsonvalue.MustParse(`{"servers": [{"host": "a"}], "debug": true}`))

	g := diagram.Build(root)
	for _, e := range g.Edges {
		fmt.Printf("%s -> %s (%s)\n", e.From, e.To, e.Label)
	}

	nodeID, _ := g.IDs.Lookup("node_2")
	fmt.Println("node_2 is", nodeID)

	_ = diagram.ToMermaid(root, diagram.Light())
	// Output:
	// node_0 -> node_1 (servers)
	// node_1 -> node_2 (0)
	// node_2 is node-2
}

func ExampleRenderSVG() {
	root := tree.Transform(jsonvalue.MustParse(`{"a": {"b": {}}}`))
	dot := diagram.ToDOT(root, diagram.Dark())

	svg, err := diagram.RenderSVG(context.Background(), dot)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies with the embedded Graphviz build
}
