package diff

import (
	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
)

// Stats counts changes by type.
type Stats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
}

// Total returns the number of counted changes.
func (s Stats) Total() int { return s.Added + s.Removed + s.Modified + s.Unchanged }

// Identical reports whether no change other than Unchanged was counted.
func (s Stats) Identical() bool { return s.Added+s.Removed+s.Modified == 0 }

// Count tallies changes by type.
func Count(changes []Change) Stats {
	var s Stats
	for _, c := range changes {
		switch c.Type {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Modified:
			s.Modified++
		case Unchanged:
			s.Unchanged++
		}
	}
	return s
}

// Result is a full comparison. Stats always describe the complete change
// list, regardless of any display filter.
type Result struct {
	Changes []Change `json:"changes"`
	Stats   Stats    `json:"stats"`
}

// Compare diffs left and right and counts the changes.
func Compare(left, right jsonvalue.Value) Result {
	changes := Diff(left, right)
	if changes == nil {
		changes = []Change{}
	}
	return Result{Changes: changes, Stats: Count(changes)}
}

// Visible returns the changes to display. With hideUnchanged, Unchanged
// entries are dropped. The receiver and its Stats are left untouched.
func (r Result) Visible(hideUnchanged bool) []Change {
	if !hideUnchanged {
		return r.Changes
	}
	out := make([]Change, 0, len(r.Changes))
	for _, c := range r.Changes {
		if c.Type != Unchanged {
			out = append(out, c)
		}
	}
	return out
}

// Filtered returns a copy of r whose Changes are Visible(hideUnchanged).
// Stats still count the unfiltered list.
func (r Result) Filtered(hideUnchanged bool) Result {
	return Result{Changes: r.Visible(hideUnchanged), Stats: r.Stats}
}
