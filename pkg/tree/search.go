package tree

import "strings"

// FindByKey returns the first structural node, in depth-first pre-order,
// whose key contains term case-insensitively. It returns nil when term is
// blank or nothing matches.
func FindByKey(root *Node, term string) *Node {
	matches := search(root, term, 1)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// Search returns every structural node whose key contains term
// case-insensitively, in depth-first pre-order.
func Search(root *Node, term string) []*Node {
	return search(root, term, -1)
}

func search(root *Node, term string, limit int) []*Node {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var matches []*Node
	Walk(root, func(n *Node) bool {
		if limit >= 0 && len(matches) >= limit {
			return false
		}
		if n.IsStructural() && strings.Contains(strings.ToLower(n.Key), term) {
			matches = append(matches, n)
		}
		return true
	})
	return matches
}

// FindByID returns the node with the given ID, or nil.
func FindByID(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Parent returns the parent of target within root, or nil for the root or
// a node outside the tree.
func Parent(root, target *Node) *Node {
	var parent *Node
	Walk(root, func(n *Node) bool {
		if parent != nil {
			return false
		}
		for _, c := range n.Children {
			if c == target {
				parent = n
				return false
			}
		}
		return true
	})
	return parent
}
