package tree_test

import (
	"fmt"

	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
	"github.com/matzehuels/jsonscope/pkg/tree"
)

func ExampleTransform() {
	v := jsonvalue.MustParse(`{"name": "api", "ports": [80, 443], "tls": {"enabled": true}}`)
	root := tree.Transform(v)

	fmt.Println("Root:", root.ID, root.Type)
	for _, e := range root.Content {
		fmt.Printf("Content: %s = %s (%s)\n", e.Key, jsonvalue.Compact(e.Value), e.RawType)
	}
	for _, c := range root.Children {
		fmt.Println("Child:", c.ID, c.Key, c.Type)
	}
	// Output:
	// Root: node-0 object
	// Content: name = "api" (string)
	// Child: node-1 ports array
	// Child: node-2 tls object
}

func ExampleDotNotation() {
	fmt.Println(tree.DotNotation([]string{"root", "users", "0", "address", "city"}))
	// Output:
	// users[0].address.city
}

func ExampleExpansion_Visible() {
	root := tree.Transform(jsonvalue.MustParse(`{"id": 7, "tags": ["a"]}`))

	var state tree.Expansion
	state.ExpandAll(root)
	for _, line := range state.Visible(root) {
		indent := fmt.Sprintf("%*s", line.Depth*2, "")
		if line.Entry != nil {
			fmt.Printf("%s%s: %s\n", indent, line.Entry.Key, jsonvalue.Compact(line.Entry.Value))
			continue
		}
		fmt.Printf("%s%s (%s)\n", indent, line.Node.Key, line.Node.Type)
	}
	// Output:
	// root (object)
	//   id: 7
	//   tags (array)
	//     0: "a"
}
