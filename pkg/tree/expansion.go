package tree

// Expansion records which nodes of a tree view are expanded.
// Nodes without a recorded state fall back to [Node.Expanded].
//
// The zero value is ready to use. Expansion is not safe for concurrent use.
type Expansion struct {
	state map[string]bool
}

// IsExpanded reports whether n is currently expanded.
func (e *Expansion) IsExpanded(n *Node) bool {
	if v, ok := e.state[n.ID]; ok {
		return v
	}
	return n.Expanded()
}

// Set records the expanded state of n.
func (e *Expansion) Set(n *Node, expanded bool) {
	if e.state == nil {
		e.state = make(map[string]bool)
	}
	e.state[n.ID] = expanded
}

// Toggle flips the state of n and returns the new state.
func (e *Expansion) Toggle(n *Node) bool {
	expanded := !e.IsExpanded(n)
	e.Set(n, expanded)
	return expanded
}

// Select expands n if it has children, so selecting a node in the graph
// reveals it in the tree.
func (e *Expansion) Select(n *Node) {
	if len(n.Children) > 0 {
		e.Set(n, true)
	}
}

// ExpandAll expands every node under root.
func (e *Expansion) ExpandAll(root *Node) { e.setAll(root, true) }

// CollapseAll collapses every node under root, including root.
func (e *Expansion) CollapseAll(root *Node) { e.setAll(root, false) }

func (e *Expansion) setAll(root *Node, expanded bool) {
	Walk(root, func(n *Node) bool {
		e.Set(n, expanded)
		return true
	})
}

// Reset forgets all recorded state.
func (e *Expansion) Reset() { e.state = nil }

// Line is one visible row of a tree view: either a node header or one of
// its content entries.
type Line struct {
	Node  *Node
	Entry *Entry // nil for a node header
	Depth int
}

// Visible flattens the tree into the rows shown under the current state.
// An expanded node lists its content entries before its children.
func (e *Expansion) Visible(root *Node) []Line {
	var lines []Line
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		lines = append(lines, Line{Node: n, Depth: depth})
		if !e.IsExpanded(n) {
			return
		}
		for i := range n.Content {
			lines = append(lines, Line{Node: n, Entry: &n.Content[i], Depth: depth + 1})
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	if root != nil {
		visit(root, 0)
	}
	return lines
}
