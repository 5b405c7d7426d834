package diff

import (
	"slices"
	"testing"

	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
)

var corpus = []string{
	`null`,
	`0`,
	`"s"`,
	`false`,
	`[]`,
	`{}`,
	`[1, 2, 3]`,
	`[null, [null], {"a": null}]`,
	`{"a": 1, "b": {"c": [true, "x"]}, "d": null}`,
	`{"users": [{"id": 1, "tags": []}, {"id": 2}], "total": 2}`,
	`{"b": 1, "a": 2}`,
}

func parse(t *testing.T, s string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.ParseString(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return v
}

// summary renders changes as "path type" strings for compact comparison.
func summary(changes []Change) []string {
	out := make([]string, len(changes))
	for i, c := range changes {
		out[i] = c.Path + " " + string(c.Type)
	}
	return out
}

func TestDiffCases(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		want        []string
	}{
		{"both null", `null`, `null`, []string{"$ unchanged"}},
		{"null to value", `null`, `1`, []string{"$ added"}},
		{"value to null", `"x"`, `null`, []string{"$ removed"}},
		{"null to object", `null`, `{"a": 1}`, []string{"$ added"}},
		{"equal scalars", `1`, `1.0`, []string{"$ unchanged"}},
		{"different scalars", `true`, `false`, []string{"$ modified"}},
		{"number vs string", `1`, `"1"`, []string{"$ modified"}},
		{"array vs object", `[1]`, `{"0": 1}`, []string{"$ modified"}},
		{"empty containers", `{}`, `[]`, []string{"$ modified"}},
		{"root array", `[1, 2]`, `[1, 3, 4]`, []string{"$[0] unchanged", "$[1] modified", "$[2] added"}},
		{"shorter right", `[1, 2]`, `[1]`, []string{"$[0] unchanged", "$[1] removed"}},
		{"nested paths", `{"a": [{"b": 1}]}`, `{"a": [{"b": 2}]}`, []string{"a[0].b modified"}},
		{"null member", `{"a": null}`, `{"a": null}`, []string{"a unchanged"}},
		{"member becomes null", `{"a": 1}`, `{"a": null}`, []string{"a removed"}},
		{"right-only keys last", `{"b": 1, "a": 1}`, `{"c": 1, "a": 1, "b": 1}`, []string{"b unchanged", "a unchanged", "c added"}},
		{"empty objects", `{}`, `{}`, []string{}},
		{"dotted key", `{"a.b": 1}`, `{"a.b": 2}`, []string{"a.b modified"}},
		{"empty root key", `{"": 1}`, `{"": 2}`, []string{"$ modified"}},
		{"under empty root key", `{"": {"a": 1}}`, `{"": {"a": 2}}`, []string{"a modified"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summary(Diff(parse(t, tt.left), parse(t, tt.right)))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Diff(%s, %s) = %v, want %v", tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestDiffAbsentValues(t *testing.T) {
	if got := Diff(nil, nil); len(got) != 0 {
		t.Errorf("Diff(absent, absent) = %v, want nothing", got)
	}

	got := Diff(jsonvalue.Null{}, nil)
	if len(got) != 1 || got[0].Type != Added || got[0].Right != nil {
		t.Errorf("Diff(null, absent) = %+v, want one added change without a value", got)
	}

	got = Diff(nil, jsonvalue.Number("1"))
	if len(got) != 1 || got[0].Type != Added {
		t.Errorf("Diff(absent, 1) = %+v, want added", got)
	}
}

func TestSimpleModify(t *testing.T) {
	res := Compare(parse(t, `{"a":1,"b":2}`), parse(t, `{"a":1,"b":3}`))

	want := Stats{Modified: 1, Unchanged: 1}
	if res.Stats != want {
		t.Errorf("Stats = %+v, want %+v", res.Stats, want)
	}

	visible := res.Visible(true)
	if len(visible) != 1 {
		t.Fatalf("Visible(true) = %d changes, want 1", len(visible))
	}
	c := visible[0]
	if c.Path != "b" || c.Type != Modified || c.Left != jsonvalue.Number("2") || c.Right != jsonvalue.Number("3") {
		t.Errorf("change = %+v, want b modified 2 -> 3", c)
	}
}

func TestAddedRemoved(t *testing.T) {
	changes := Diff(parse(t, `{"x":1}`), parse(t, `{"y":1}`))
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}

	if c := changes[0]; c.Path != "x" || c.Type != Removed || c.Left != jsonvalue.Number("1") || c.Right != nil {
		t.Errorf("changes[0] = %+v, want x removed 1", c)
	}
	if c := changes[1]; c.Path != "y" || c.Type != Added || c.Right != jsonvalue.Number("1") || c.Left != nil {
		t.Errorf("changes[1] = %+v, want y added 1", c)
	}
}

func TestTypeChangeDoesNotRecurse(t *testing.T) {
	changes := Diff(parse(t, `{"a":[1,2]}`), parse(t, `{"a":{"z":1}}`))
	if len(changes) != 1 {
		t.Fatalf("got %v, want a single change", summary(changes))
	}
	c := changes[0]
	if c.Path != "a" || c.Type != Modified {
		t.Errorf("change = %s %s, want a modified", c.Path, c.Type)
	}
	if jsonvalue.Compact(c.Left) != `[1,2]` || jsonvalue.Compact(c.Right) != `{"z":1}` {
		t.Errorf("values = %s, %s", jsonvalue.Compact(c.Left), jsonvalue.Compact(c.Right))
	}
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		parent, key, want string
	}{
		{RootPath, "a", "a"},
		{"a", "b", "a.b"},
		{"a[0]", "b", "a[0].b"},
		{RootPath, "", RootPath},
		{"a", "", "a."},
	}

	for _, tt := range tests {
		if got := FieldPath(tt.parent, tt.key); got != tt.want {
			t.Errorf("FieldPath(%q, %q) = %q, want %q", tt.parent, tt.key, got, tt.want)
		}
	}
}

func TestPositionalArrays(t *testing.T) {
	changes := Diff(parse(t, `[1,2,3]`), parse(t, `[3,1,2]`))

	want := []struct {
		path        string
		left, right string
	}{
		{"$[0]", "1", "3"},
		{"$[1]", "2", "1"},
		{"$[2]", "3", "2"},
	}
	if len(changes) != len(want) {
		t.Fatalf("got %v", summary(changes))
	}
	for i, w := range want {
		c := changes[i]
		if c.Path != w.path || c.Type != Modified || jsonvalue.Compact(c.Left) != w.left || jsonvalue.Compact(c.Right) != w.right {
			t.Errorf("changes[%d] = %s %s %s->%s, want %s modified %s->%s",
				i, c.Path, c.Type, jsonvalue.Compact(c.Left), jsonvalue.Compact(c.Right), w.path, w.left, w.right)
		}
	}
}

func TestReflexivity(t *testing.T) {
	for _, doc := range corpus {
		t.Run(doc, func(t *testing.T) {
			v := parse(t, doc)
			res := Compare(v, v)
			for _, c := range res.Changes {
				if c.Type != Unchanged {
					t.Errorf("Diff(v, v) reported %s at %s", c.Type, c.Path)
				}
			}
			if res.Stats.Unchanged != len(res.Changes) {
				t.Errorf("Unchanged = %d, want %d", res.Stats.Unchanged, len(res.Changes))
			}
			if want := leafCount(v); res.Stats.Unchanged != want {
				t.Errorf("Unchanged = %d, want %d compared leaves", res.Stats.Unchanged, want)
			}
		})
	}
}

// leafCount counts the scalar locations of v, which is what diffing v against
// itself reports.
func leafCount(v jsonvalue.Value) int {
	switch x := v.(type) {
	case jsonvalue.Array:
		n := 0
		for _, e := range x {
			n += leafCount(e)
		}
		return n
	case *jsonvalue.Object:
		n := 0
		for _, k := range x.Keys() {
			m, _ := x.Get(k)
			n += leafCount(m)
		}
		return n
	}
	return 1
}

func TestAddRemoveSymmetry(t *testing.T) {
	for _, a := range corpus {
		for _, b := range corpus {
			va, vb := parse(t, a), parse(t, b)
			forward, backward := Diff(va, vb), Diff(vb, va)

			added := make(map[string]Change)
			for _, c := range forward {
				if c.Type == Added {
					added[c.Path] = c
				}
			}
			removed := make(map[string]Change)
			for _, c := range backward {
				if c.Type == Removed {
					removed[c.Path] = c
				}
			}

			for path, c := range added {
				r, ok := removed[path]
				if !ok {
					t.Errorf("Diff(%s, %s): %s added but not removed in reverse", a, b, path)
					continue
				}
				if !jsonvalue.DeepEqual(c.Right, r.Left) {
					t.Errorf("Diff(%s, %s): %s values not swapped", a, b, path)
				}
			}
			if len(added) != len(removed) {
				t.Errorf("Diff(%s, %s): %d added vs %d removed in reverse", a, b, len(added), len(removed))
			}
		}
	}
}

func TestStatsMatchChanges(t *testing.T) {
	for _, a := range corpus {
		for _, b := range corpus {
			res := Compare(parse(t, a), parse(t, b))
			if res.Stats.Total() != len(res.Changes) {
				t.Errorf("Compare(%s, %s): stats total %d, changes %d", a, b, res.Stats.Total(), len(res.Changes))
			}
		}
	}
}
