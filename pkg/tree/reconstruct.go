package tree

import (
	"strconv"

	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
)

// ToValue rebuilds a JSON value from n.
//
// Array elements are put back at their indices. Object members come back
// with content entries first and children after them, so member order can
// differ from the source document. A null root yields null.
func ToValue(n *Node) jsonvalue.Value {
	if n == nil {
		return nil
	}

	switch n.Type {
	case TypeArray:
		arr := make(jsonvalue.Array, n.MemberCount())
		for _, e := range n.Content {
			if i, err := strconv.Atoi(e.Key); err == nil && i < len(arr) {
				arr[i] = e.Value
			}
		}
		for _, c := range n.Children {
			if i, err := strconv.Atoi(c.Key); err == nil && i < len(arr) {
				arr[i] = ToValue(c)
			}
		}
		for i := range arr {
			if arr[i] == nil {
				arr[i] = jsonvalue.Null{}
			}
		}
		return arr
	case TypeObject:
		obj := jsonvalue.NewObject()
		for _, e := range n.Content {
			obj.Set(e.Key, e.Value)
		}
		for _, c := range n.Children {
			obj.Set(c.Key, ToValue(c))
		}
		return obj
	}

	if len(n.Content) == 0 {
		return jsonvalue.Null{}
	}
	return n.Content[0].Value
}
