package diagram

import (
	"github.com/matzehuels/jsonscope/pkg/errors"
)

// Style holds the colors of one node class.
type Style struct {
	Fill   string `toml:"fill" json:"fill"`
	Stroke string `toml:"stroke" json:"stroke"`
	Color  string `toml:"color" json:"color"` // text color
}

// Palette assigns a Style to each node class. It only affects class
// declarations, never the graph itself.
type Palette struct {
	Name   string `toml:"name" json:"name"`
	Array  Style  `toml:"array" json:"array"`
	Object Style  `toml:"object" json:"object"`
	Root   Style  `toml:"root" json:"root"`
}

// Light returns the palette for light backgrounds.
func Light() Palette {
	return Palette{
		Name:   "light",
		Array:  Style{Fill: "#ffffff", Stroke: "#db2777", Color: "#831843"},
		Object: Style{Fill: "#ffffff", Stroke: "#0891b2", Color: "#155e75"},
		Root:   Style{Fill: "#ffffff", Stroke: "#52525b", Color: "#18181b"},
	}
}

// Dark returns the palette for dark backgrounds.
func Dark() Palette {
	return Palette{
		Name:   "dark",
		Array:  Style{Fill: "#18181b", Stroke: "#f472b6", Color: "#e4e4e7"},
		Object: Style{Fill: "#18181b", Stroke: "#22d3ee", Color: "#e4e4e7"},
		Root:   Style{Fill: "#18181b", Stroke: "#a1a1aa", Color: "#e4e4e7"},
	}
}

// Theme returns the palette called name ("light" or "dark").
func Theme(name string) (Palette, error) {
	if err := errors.ValidateTheme(name); err != nil {
		return Palette{}, err
	}
	if name == "dark" {
		return Dark(), nil
	}
	return Light(), nil
}

// Style returns the style for class c.
func (p Palette) Style(c Class) Style {
	switch c {
	case ClassArray:
		return p.Array
	case ClassRoot:
		return p.Root
	}
	return p.Object
}
