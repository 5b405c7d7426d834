package diagram

import "strconv"

// IDMap assigns diagram identifiers to node IDs and maps them back.
//
// Characters outside [A-Za-z0-9_] are replaced with underscores. When two
// node IDs sanitize to the same identifier, the later one gets a numeric
// suffix, so distinct node IDs never share a diagram identifier.
type IDMap struct {
	toDiagram map[string]string
	toNode    map[string]string
}

// NewIDMap returns an empty map.
func NewIDMap() *IDMap {
	return &IDMap{
		toDiagram: make(map[string]string),
		toNode:    make(map[string]string),
	}
}

// Assign returns the diagram identifier for nodeID, allocating one on first use.
func (m *IDMap) Assign(nodeID string) string {
	if id, ok := m.toDiagram[nodeID]; ok {
		return id
	}

	base := Sanitize(nodeID)
	id := base
	for n := 2; ; n++ {
		if _, taken := m.toNode[id]; !taken {
			break
		}
		id = base + "_" + strconv.Itoa(n)
	}

	m.toDiagram[nodeID] = id
	m.toNode[id] = nodeID
	return id
}

// DiagramID returns the identifier assigned to nodeID, if any.
func (m *IDMap) DiagramID(nodeID string) (string, bool) {
	id, ok := m.toDiagram[nodeID]
	return id, ok
}

// Lookup returns the node ID behind a diagram identifier.
func (m *IDMap) Lookup(diagramID string) (string, bool) {
	id, ok := m.toNode[diagramID]
	return id, ok
}

// Len returns the number of assigned identifiers.
func (m *IDMap) Len() int { return len(m.toNode) }

// Sanitize replaces every character outside [A-Za-z0-9_] with an underscore.
// An empty string becomes a single underscore.
func Sanitize(id string) string {
	if id == "" {
		return "_"
	}
	out := make([]byte, 0, len(id))
	for _, r := range id {
		if r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			out = append(out, byte(r))
			continue
		}
		out = append(out, '_')
	}
	return string(out)
}
