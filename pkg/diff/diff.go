package diff

import (
	"strconv"

	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
)

// RootPath is the path of the compared documents themselves.
const RootPath = "$"

// ChangeType classifies a [Change].
type ChangeType string

// Change types.
const (
	Added     ChangeType = "added"
	Removed   ChangeType = "removed"
	Modified  ChangeType = "modified"
	Unchanged ChangeType = "unchanged"
)

// Change is one compared location. Left is nil for Added changes and Right
// is nil for Removed changes.
type Change struct {
	Path  string          `json:"path"`
	Type  ChangeType      `json:"type"`
	Left  jsonvalue.Value `json:"leftValue,omitempty"`
	Right jsonvalue.Value `json:"rightValue,omitempty"`
}

// Diff compares two parsed documents and returns every compared location in
// traversal order, including unchanged ones.
//
// Arrays are compared index by index. Object members are visited in left
// insertion order, then right-only members in right insertion order. Values
// of different types produce a single Modified change without recursion.
func Diff(left, right jsonvalue.Value) []Change {
	var d differ
	d.diff(left, right, RootPath)
	return d.changes
}

type differ struct {
	changes []Change
}

func (d *differ) emit(path string, t ChangeType, left, right jsonvalue.Value) {
	d.changes = append(d.changes, Change{Path: path, Type: t, Left: left, Right: right})
}

func (d *differ) diff(left, right jsonvalue.Value, path string) {
	leftNull, rightNull := jsonvalue.IsNull(left), jsonvalue.IsNull(right)

	switch {
	case leftNull && rightNull:
		d.emit(path, Unchanged, left, right)
		return
	case left == nil && right == nil:
		return
	case leftNull || left == nil:
		d.emit(path, Added, nil, right)
		return
	case rightNull || right == nil:
		d.emit(path, Removed, left, nil)
		return
	}

	if left.Kind() != right.Kind() {
		d.emit(path, Modified, left, right)
		return
	}

	switch l := left.(type) {
	case jsonvalue.Array:
		d.diffArrays(l, right.(jsonvalue.Array), path)
	case *jsonvalue.Object:
		d.diffObjects(l, right.(*jsonvalue.Object), path)
	default:
		if jsonvalue.Equal(left, right) {
			d.emit(path, Unchanged, left, right)
		} else {
			d.emit(path, Modified, left, right)
		}
	}
}

func (d *differ) diffArrays(left, right jsonvalue.Array, path string) {
	for i := range max(len(left), len(right)) {
		p := IndexPath(path, i)
		switch {
		case i >= len(left):
			d.emit(p, Added, nil, right[i])
		case i >= len(right):
			d.emit(p, Removed, left[i], nil)
		default:
			d.diff(left[i], right[i], p)
		}
	}
}

func (d *differ) diffObjects(left, right *jsonvalue.Object, path string) {
	visit := func(key string) {
		p := FieldPath(path, key)
		l, inLeft := left.Get(key)
		r, inRight := right.Get(key)
		switch {
		case !inLeft:
			d.emit(p, Added, nil, r)
		case !inRight:
			d.emit(p, Removed, l, nil)
		default:
			d.diff(l, r, p)
		}
	}

	for _, key := range left.Keys() {
		visit(key)
	}
	for _, key := range right.Keys() {
		if !left.Has(key) {
			visit(key)
		}
	}
}

// IndexPath returns the path of element i under parent.
func IndexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

// FieldPath returns the path of member key under parent. Members of the root
// are named by their key alone. An empty path, from an empty key at the root,
// collapses to RootPath, so its members are again named by key alone.
func FieldPath(parent, key string) string {
	p := parent + "." + key
	if parent == RootPath {
		p = key
	}
	if p == "" {
		return RootPath
	}
	return p
}
