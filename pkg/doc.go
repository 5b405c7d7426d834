// Package pkg provides the core libraries for jsonscope JSON inspection.
//
// # Overview
//
// jsonscope turns a JSON document into a navigable node tree, generates
// diagram source describing the document's structure, and reports
// structural differences between two documents. The pkg directory is
// organized into three areas:
//
//  1. Domain logic: [jsonvalue], [tree], [diagram], [diff]
//  2. Orchestration: [pipeline] (parse → transform → diagram → render)
//  3. Infrastructure: [cache], [store], [config], [server], [fetch], [watch]
//
// # Architecture
//
// The typical data flow:
//
//	JSON text (file, stdin, URL, saved document)
//	         ↓
//	    [jsonvalue] package (order-preserving parse)
//	         ↓
//	    [tree] package (GraphNode tree, expansion state, path notation)
//	         ↓
//	    [diagram] package (Mermaid or DOT source, SVG/PNG via Graphviz)
//
// Two documents go through [diff] instead, which compares parsed values
// directly and never builds a tree.
//
// # Quick Start
//
//	v, _ := jsonvalue.ParseString(`{"users": [{"name": "ada"}]}`)
//	root := tree.Transform(v)
//	src := diagram.ToMermaid(root, diagram.Light())
//
//	res := diff.Compare(left, right)
//	fmt.Println(res.Stats.Modified)
//
// # Main Packages
//
// [jsonvalue] - Value model that keeps object member order and number
// literals, with a strict parser built on go-json-experiment/json.
//
// [tree] - The GraphNode transform. Objects and arrays become nodes; scalar
// members are folded into their parent's content. Also expansion state for
// tree views, key search, dot notation and reconstruction.
//
// [diagram] - Mermaid and Graphviz DOT generation with light and dark
// palettes, and SVG/PNG rendering through goccy/go-graphviz.
//
// [diff] - Structural comparison producing an ordered change list and
// summary counts.
//
// [pipeline] - Caching orchestration used by both the CLI and the HTTP API.
//
// [cache] - Keyed cache with file, Redis and no-op backends.
//
// [store] - Saved documents on disk or in MongoDB.
//
// [server] - chi-based HTTP API.
//
// [errors] - Error codes shared by every layer.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/diff/...       # Specific package
//	go test -run Example ./...   # Examples only
package pkg
