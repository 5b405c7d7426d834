package jsonvalue

import (
	"bytes"
	"encoding/json"
)

// Compact returns the single-line JSON encoding of v. An absent value
// encodes as "null".
func Compact(v Value) string {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return ""
	}
	return buf.String()
}

// Indent returns the JSON encoding of v with one member per line, each level
// indented by indent. Member order is preserved.
func Indent(v Value, indent string) ([]byte, error) {
	var raw bytes.Buffer
	if err := writeValue(&raw, v); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw.Bytes(), "", indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
