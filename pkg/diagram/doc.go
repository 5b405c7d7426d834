// Package diagram turns node trees into diagram source for external renderers.
//
// # Overview
//
// Only objects and arrays appear in a diagram. Each becomes a box labeled
// with its key, connected to its structural children by an edge that carries
// the child's key. Scalars stay in the tree's content tables and are never
// drawn, so a container whose members are all scalars has no outgoing edges.
//
// Two dialects are produced from the same [Graph]:
//
//   - [ToMermaid]: Mermaid flowchart source (graph TD)
//   - [ToDOT]: Graphviz DOT source (rankdir=TB)
//
// # Classes and palettes
//
// Every box has one style class: root for the document root, otherwise array
// or object. Colors come from a [Palette]; [Light] and [Dark] are built in.
// The palette only changes class declarations, never the topology.
//
// # Identifiers and labels
//
// Node IDs such as node-12 are not valid Mermaid identifiers. [IDMap] rewrites
// them to node_12 and resolves collisions with a numeric suffix. Use
// [IDMap.Lookup] to go from a clicked diagram element back to the node.
// Labels are escaped for each dialect so any key can be embedded.
//
// # Rendering
//
// [RenderSVG] and [RenderPNG] run DOT source through
// [github.com/goccy/go-graphviz], an embedded Graphviz build. Renderer failures
// carry the RENDER_FAILED error code.
package diagram
