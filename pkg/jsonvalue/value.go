package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// Kind identifies the JSON type of a value.
// The names match what JavaScript's typeof reports for scalars.
type Kind string

// JSON value kinds.
const (
	KindNull   Kind = "null"
	KindBool   Kind = "boolean"
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindArray  Kind = "array"
	KindObject Kind = "object"
)

// Value is a parsed JSON value.
type Value interface {
	Kind() Kind
	MarshalJSON() ([]byte, error)
}

// =============================================================================
// Scalars
// =============================================================================

// Null is the JSON null literal.
type Null struct{}

func (Null) Kind() Kind                   { return KindNull }
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Bool is a JSON boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

func (b Bool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// Number is a JSON number kept as its source literal.
type Number string

func (Number) Kind() Kind { return KindNumber }

// MarshalJSON writes the literal unchanged.
func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	return []byte(n), nil
}

// Float64 returns the numeric value. Out-of-range literals saturate to ±Inf;
// literals that are not numbers at all yield NaN.
func (n Number) Float64() float64 {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// String is a JSON string.
type String string

func (String) Kind() Kind { return KindString }

func (s String) MarshalJSON() ([]byte, error) {
	return quote(string(s)), nil
}

// =============================================================================
// Containers
// =============================================================================

// Array is an ordered list of values.
type Array []Value

func (Array) Kind() Kind { return KindArray }

// Index returns the element at i, or nil when i is out of range.
func (a Array) Index(i int) Value {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

func (a Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(&buf, v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Object is a JSON object that remembers member insertion order.
// The zero value is not usable; create objects with [NewObject].
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

func (*Object) Kind() Kind { return KindObject }

// Set stores v under key. A new key is appended to the member order; an
// existing key keeps its position and has its value replaced.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Get returns the value for key and whether the key is present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Keys returns the member names in insertion order.
// The returned slice must not be modified.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of members.
func (o *Object) Len() int { return len(o.keys) }

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(quote(k))
		buf.WriteByte(':')
		if err := writeValue(&buf, o.fields[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v Value) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// quote encodes s as a JSON string without HTML escaping.
func quote(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// =============================================================================
// Helpers
// =============================================================================

// IsNull reports whether v is the null literal.
func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// IsContainer reports whether v is an array or an object.
func IsContainer(v Value) bool {
	switch v.(type) {
	case Array, *Object:
		return true
	}
	return false
}

// RawType returns the type name shown next to a scalar: "null" for null,
// otherwise the JSON kind. An absent value reports "undefined".
func RawType(v Value) string {
	if v == nil {
		return "undefined"
	}
	return string(v.Kind())
}

// Len returns the number of direct members of a container, and 0 for scalars.
func Len(v Value) int {
	switch x := v.(type) {
	case Array:
		return len(x)
	case *Object:
		return x.Len()
	}
	return 0
}

// Equal reports strict identity of two scalars. Containers are never equal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x.Float64() == y.Float64()
	case String:
		y, ok := b.(String)
		return ok && x == y
	}
	return false
}

// DeepEqual reports structural equality. Object member order is ignored.
func DeepEqual(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !DeepEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			yv, ok := y.fields[k]
			if !ok || !DeepEqual(x.fields[k], yv) {
				return false
			}
		}
		return true
	}
	return Equal(a, b)
}
