// Package jsonvalue provides an order-preserving JSON value model and parser.
//
// # Overview
//
// The standard decoders turn JSON objects into Go maps, which loses the member
// order written in the source text. Everything downstream of jsonscope (the
// tree view, the diagram, the diff) walks object members in the order the
// document defines them, so this package decodes into its own small value
// model instead:
//
//   - [Null], [Bool], [Number], [String]: scalars
//   - [Array]: ordered elements
//   - [*Object]: members in insertion order with keyed lookup
//
// A nil [Value] means "absent" (a key or index that does not exist). It is
// never produced by the parser for a present value.
//
// # Parsing
//
// Parse a document from a reader, byte slice, string or file:
//
//	v, err := jsonvalue.ParseString(`{"b": 1, "a": [true, null]}`)
//	if err != nil {
//	    var perr *jsonvalue.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Println(perr.Offset, perr)
//	    }
//	}
//
// Parsing is strict: empty input, trailing data and multiple root values are
// rejected. Duplicate object keys follow JavaScript semantics: the first
// occurrence fixes the position, the last occurrence provides the value.
// Nesting deeper than [ParseOptions.MaxDepth] is rejected so recursive
// consumers never see unbounded depth.
//
// # Equality
//
// [Equal] is strict scalar identity: values of the same kind with the same
// value. Numbers compare by their float64 value, so 1 and 1.0 are equal.
// Containers are never equal to each other; use [DeepEqual] for structural
// comparison.
package jsonvalue
