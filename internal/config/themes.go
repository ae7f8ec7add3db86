package config

import "fmt"

// Theme is a named bg/fg/active color triple, packed ARGB.
type Theme struct {
	Name   string
	Bg     uint32
	Fg     uint32
	Active uint32
}

// Built-in themes selectable through the `theme` config key. Charcoal
// matches the bare defaults.
var Themes = []Theme{
	{Name: "charcoal", Bg: 0xFF1A1A1A, Fg: 0xFF606060, Active: 0xFFFF0000},
	{Name: "midnight", Bg: 0xFF0B1021, Fg: 0xFF3A4678, Active: 0xFF00D7FF},
	{Name: "phosphor", Bg: 0xFF001100, Fg: 0xFF00AA44, Active: 0xFF88FF88},
	{Name: "paper", Bg: 0xFFF2EFE5, Fg: 0xFFB8B2A0, Active: 0xFFCC3311},
	{Name: "ember", Bg: 0xFF201015, Fg: 0xFF7A4048, Active: 0xFFFF9500},
}

// LookupTheme finds a built-in theme by name.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ThemeNames lists the built-in theme names in presentation order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// HexRGB formats the RGB channels of a packed ARGB color as "#rrggbb".
func HexRGB(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xFFFFFF)
}
