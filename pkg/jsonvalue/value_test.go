package jsonvalue

import (
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null null", Null{}, Null{}, true},
		{"null false", Null{}, Bool(false), false},
		{"same bool", Bool(true), Bool(true), true},
		{"different bool", Bool(true), Bool(false), false},
		{"same number", Number("1"), Number("1"), true},
		{"number by value", Number("1"), Number("1.0"), true},
		{"different number", Number("1"), Number("2"), false},
		{"number vs string", Number("1"), String("1"), false},
		{"same string", String("x"), String("x"), true},
		{"empty arrays", Array{}, Array{}, false},
		{"objects", NewObject(), NewObject(), false},
		{"absent", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDeepEqual(t *testing.T) {
	a := MustParse(`{"x": [1, {"y": null}], "z": "s"}`)
	b := MustParse(`{"z": "s", "x": [1, {"y": null}]}`)
	c := MustParse(`{"z": "s", "x": [1, {"y": 0}]}`)

	if !DeepEqual(a, b) {
		t.Error("DeepEqual should ignore member order")
	}
	if DeepEqual(a, c) {
		t.Error("DeepEqual reported different nested values as equal")
	}
	if !DeepEqual(nil, nil) {
		t.Error("DeepEqual(nil, nil) = false")
	}
}

func TestObjectSetKeepsPosition(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number("1"))
	obj.Set("b", Number("2"))
	obj.Set("a", Number("3"))

	if got := Compact(obj); got != `{"a":3,"b":2}` {
		t.Errorf("Compact() = %s", got)
	}
	if !obj.Has("b") || obj.Has("c") {
		t.Error("Has() returned wrong result")
	}
}

func TestRawType(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{nil, "undefined"},
		{Null{}, "null"},
		{Bool(true), "boolean"},
		{Number("1"), "number"},
		{String(""), "string"},
		{Array{}, "array"},
		{NewObject(), "object"},
	}
	for _, tt := range tests {
		if got := RawType(tt.v); got != tt.want {
			t.Errorf("RawType(%#v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestNumberFloat64(t *testing.T) {
	if got := Number("2.5").Float64(); got != 2.5 {
		t.Errorf("Float64() = %v, want 2.5", got)
	}
	if got := Number("1e999").Float64(); !math.IsInf(got, 1) {
		t.Errorf("Float64() = %v, want +Inf", got)
	}
	if got := Number("abc").Float64(); !math.IsNaN(got) {
		t.Errorf("Float64() = %v, want NaN", got)
	}
}

func TestCompactRoundTrip(t *testing.T) {
	tests := []string{
		`null`,
		`[1,"two",true,null]`,
		`{"b":{"d":[],"c":{}},"a":"<tag>"}`,
		`"quote \" and \\ backslash"`,
		`-0.000e10`,
	}
	for _, in := range tests {
		if got := Compact(MustParse(in)); got != in {
			t.Errorf("Compact(Parse(%s)) = %s", in, got)
		}
	}
	if got := Compact(nil); got != "null" {
		t.Errorf("Compact(nil) = %s, want null", got)
	}
}

func TestIndent(t *testing.T) {
	got, err := Indent(MustParse(`{"b":[1,2],"a":{}}`), "  ")
	if err != nil {
		t.Fatalf("Indent() error: %v", err)
	}
	want := "{\n  \"b\": [\n    1,\n    2\n  ],\n  \"a\": {}\n}\n"
	if string(got) != want {
		t.Errorf("Indent() =\n%s\nwant\n%s", got, want)
	}
}
