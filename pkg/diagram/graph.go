package diagram

import (
	"github.com/matzehuels/jsonscope/pkg/tree"
)

// Class is the style class of a diagram node.
type Class string

// Style classes, declared in this order.
const (
	ClassArray  Class = "array"
	ClassObject Class = "object"
	ClassRoot   Class = "root"
)

// Classes lists every class in declaration order.
var Classes = []Class{ClassArray, ClassObject, ClassRoot}

// Vertex is a diagrammed object or array node.
type Vertex struct {
	ID     string // diagram identifier
	NodeID string
	Label  string
	Class  Class
}

// Edge connects a structural node to a structural child, labeled with the
// child's key.
type Edge struct {
	From  string
	To    string
	Label string
}

// Graph is the dialect-independent diagram of a node tree. Primitive nodes
// are never part of it.
type Graph struct {
	Vertices []Vertex
	Edges    []Edge
	IDs      *IDMap
}

// Build collects the diagram of root in depth-first order. A primitive root
// yields an empty graph.
func Build(root *tree.Node) *Graph {
	g := &Graph{IDs: NewIDMap()}
	if root == nil || !root.IsStructural() {
		return g
	}
	g.visit(root)
	return g
}

func (g *Graph) visit(n *tree.Node) {
	id := g.IDs.Assign(n.ID)
	g.Vertices = append(g.Vertices, Vertex{
		ID:     id,
		NodeID: n.ID,
		Label:  n.Key,
		Class:  classOf(n),
	})

	for _, c := range n.Children {
		if !c.IsStructural() {
			continue
		}
		g.Edges = append(g.Edges, Edge{From: id, To: g.IDs.Assign(c.ID), Label: c.Key})
		g.visit(c)
	}
}

func classOf(n *tree.Node) Class {
	switch {
	case n.IsRoot():
		return ClassRoot
	case n.Type == tree.TypeArray:
		return ClassArray
	}
	return ClassObject
}

// Root returns the vertex of the transform root, if the graph has one.
func (g *Graph) Root() (Vertex, bool) {
	if len(g.Vertices) == 0 {
		return Vertex{}, false
	}
	return g.Vertices[0], true
}

// Vertex returns the vertex with the given diagram identifier.
func (g *Graph) Vertex(id string) (Vertex, bool) {
	for _, v := range g.Vertices {
		if v.ID == id {
			return v, true
		}
	}
	return Vertex{}, false
}

// classAssignments returns one (id, class) pair per vertex, deduplicated by id.
func (g *Graph) classAssignments() []Vertex {
	seen := make(map[string]bool, len(g.Vertices))
	out := make([]Vertex, 0, len(g.Vertices))
	for _, v := range g.Vertices {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		out = append(out, v)
	}
	return out
}
