package diff

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/jsonscope/pkg/jsonvalue"
)

// MaxValueWidth is the number of characters FormatValue keeps before
// truncating.
const MaxValueWidth = 50

// FormatValue renders a change value for a table cell: "undefined" for an
// absent value, "null", compact JSON for containers and the plain text of
// other scalars. Numbers print by value. Output longer than MaxValueWidth characters is cut and
// suffixed with "...".
func FormatValue(v jsonvalue.Value) string {
	var s string
	switch x := v.(type) {
	case nil:
		return "undefined"
	case jsonvalue.String:
		s = string(x)
	case jsonvalue.Number:
		s = formatNumber(x)
	default:
		s = jsonvalue.Compact(v)
	}
	return truncate(s, MaxValueWidth)
}

// LeftCell is the left-hand table cell of c: "-" for additions.
func LeftCell(c Change) string {
	if c.Type == Added {
		return "-"
	}
	return FormatValue(c.Left)
}

// RightCell is the right-hand table cell of c: "-" for removals.
func RightCell(c Change) string {
	if c.Type == Removed {
		return "-"
	}
	return FormatValue(c.Right)
}

// formatNumber prints n by value so equal numbers render alike ("1.0" and
// "1" both print as "1"). Magnitudes outside [1e-6, 1e21) and literals that do
// not fit a float64 keep their source text.
func formatNumber(n jsonvalue.Number) string {
	f := n.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return string(n)
	}
	if a := math.Abs(f); a != 0 && (a < 1e-6 || a >= 1e21) {
		return string(n)
	}
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width]) + "..."
}
