package tree

import (
	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
)

// RootKey is the key given to the node built from the whole document.
const RootKey = "root"

// NodeType classifies a node by the JSON value it represents.
type NodeType string

const (
	// TypeObject is a non-null JSON object.
	TypeObject NodeType = "object"
	// TypeArray is a JSON array.
	TypeArray NodeType = "array"
	// TypePrimitive is any scalar, including null.
	TypePrimitive NodeType = "primitive"
)

// Entry is a scalar member displayed in its parent's content table.
type Entry struct {
	Key     string          `json:"key"`
	Value   jsonvalue.Value `json:"value"`
	RawType string          `json:"rawType"` // "null", "string", "number" or "boolean"
}

// Node is one object, array or scalar root in a transformed document.
type Node struct {
	ID       string          `json:"id"`
	Key      string          `json:"key"`
	Path     []string        `json:"path"` // keys from the root to this node, inclusive
	Type     NodeType        `json:"type"`
	Value    jsonvalue.Value `json:"value,omitempty"` // set for primitive nodes only
	Content  []Entry         `json:"content"`
	Children []*Node         `json:"children"`
}

// Expanded reports whether the node starts expanded in a tree view.
// Only the root, whose path has length 1, does.
func (n *Node) Expanded() bool { return len(n.Path) < 2 }

// IsRoot reports whether n was built from the whole document.
func (n *Node) IsRoot() bool { return len(n.Path) == 1 }

// IsStructural reports whether n is an object or array.
func (n *Node) IsStructural() bool { return n.Type != TypePrimitive }

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int { return len(n.Path) - 1 }

// ChildKeys returns the keys of n's children in order.
func (n *Node) ChildKeys() []string {
	keys := make([]string, len(n.Children))
	for i, c := range n.Children {
		keys[i] = c.Key
	}
	return keys
}

// MemberCount returns len(Content) + len(Children).
func (n *Node) MemberCount() int { return len(n.Content) + len(n.Children) }

// Walk calls fn for n and every descendant in depth-first pre-order.
// Returning false from fn skips that node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node) bool {
		count++
		return true
	})
	return count
}
