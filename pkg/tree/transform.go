package tree

import (
	"strconv"

	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
)

// DefaultIDPrefix prefixes the counter in generated node IDs.
const DefaultIDPrefix = "node-"

// Options configures [TransformWithOptions].
type Options struct {
	// IDPrefix replaces DefaultIDPrefix when non-empty.
	IDPrefix string
}

// Transform builds the node tree for v. It never fails for a parsed value.
func Transform(v jsonvalue.Value) *Node {
	return TransformWithOptions(v, Options{})
}

// TransformWithOptions is [Transform] with explicit options.
func TransformWithOptions(v jsonvalue.Value, opts Options) *Node {
	if opts.IDPrefix == "" {
		opts.IDPrefix = DefaultIDPrefix
	}
	b := &builder{prefix: opts.IDPrefix}
	return b.build(RootKey, v, nil)
}

type builder struct {
	prefix string
	next   int
}

func (b *builder) id() string {
	id := b.prefix + strconv.Itoa(b.next)
	b.next++
	return id
}

func (b *builder) build(key string, v jsonvalue.Value, parent []string) *Node {
	path := make([]string, len(parent)+1)
	copy(path, parent)
	path[len(parent)] = key

	n := &Node{
		ID:       b.id(),
		Key:      key,
		Path:     path,
		Type:     typeOf(v),
		Content:  []Entry{},
		Children: []*Node{},
	}

	switch x := v.(type) {
	case jsonvalue.Null, nil:
		n.Value = jsonvalue.String("null")
		return n
	case jsonvalue.Array:
		for i, elem := range x {
			b.route(n, strconv.Itoa(i), elem)
		}
	case *jsonvalue.Object:
		for _, k := range x.Keys() {
			member, _ := x.Get(k)
			b.route(n, k, member)
		}
	default:
		// Scalars only reach build as the root; they get a self entry.
		n.Value = v
		n.Content = append(n.Content, entry(key, v))
	}
	return n
}

// route sends a member to the content table or recurses into it.
func (b *builder) route(n *Node, key string, v jsonvalue.Value) {
	if jsonvalue.IsContainer(v) {
		n.Children = append(n.Children, b.build(key, v, n.Path))
		return
	}
	n.Content = append(n.Content, entry(key, v))
}

func entry(key string, v jsonvalue.Value) Entry {
	return Entry{Key: key, Value: v, RawType: jsonvalue.RawType(v)}
}

func typeOf(v jsonvalue.Value) NodeType {
	switch v.(type) {
	case jsonvalue.Array:
		return TypeArray
	case *jsonvalue.Object:
		return TypeObject
	}
	return TypePrimitive
}
