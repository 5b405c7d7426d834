// Package tree converts parsed JSON values into navigable node trees.
//
// # Overview
//
// [Transform] walks a [jsonvalue.Value] and produces a [Node] for every
// object and array it contains. At each level the direct members are split
// in two:
//
//   - Content: members whose value is a scalar (string, number, boolean, null)
//   - Children: members whose value is an object or array, recursively transformed
//
// Every direct member of a container lands in exactly one of the two lists,
// in the order the document defines them.
//
// # Identifiers
//
// Nodes are numbered node-0, node-1, ... in pre-order. The counter belongs to
// a single Transform call, so transforming the same document twice yields
// identical identifiers.
//
// # Scalar roots
//
// A scalar root becomes a primitive node whose Content holds one entry keyed
// by the root key. A null root is the exception: it becomes a primitive node
// with Value "null" and no Content at all.
//
// # Display state
//
// Nodes are immutable after Transform. Expand/collapse state lives in an
// [Expansion], keyed by node ID; only the root starts expanded.
//
// # Paths
//
// Every node carries its breadcrumb Path starting at [RootKey]. [DotNotation]
// turns a path into a copyable reference such as users[0].name. Keys that
// contain "." or "[" are not escaped, so dot notation is for display only.
package tree
