package tree

import "strings"

// DotNotation renders a node path as a copyable reference such as
// users[0].name. A leading RootKey segment is dropped. The first remaining
// segment is written bare; later numeric segments become [n] and all others
// .key. Keys are not escaped.
func DotNotation(path []string) string {
	if len(path) > 0 && path[0] == RootKey {
		path = path[1:]
	}

	var b strings.Builder
	for i, seg := range path {
		switch {
		case i == 0:
			b.WriteString(seg)
		case isIndex(seg):
			b.WriteByte('[')
			b.WriteString(seg)
			b.WriteByte(']')
		default:
			b.WriteByte('.')
			b.WriteString(seg)
		}
	}
	return b.String()
}

// EntryPath returns the dot notation of the member key of n.
func EntryPath(n *Node, key string) string {
	path := make([]string, 0, len(n.Path)+1)
	path = append(path, n.Path...)
	return DotNotation(append(path, key))
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
