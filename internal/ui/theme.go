package ui

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Theme holds the resolved color palette as hex strings.
type Theme struct {
	Foreground          string
	Background          string
	Accent              string
	SelectionForeground string
	SelectionBackground string
	Dim                 string
	Red                 string
	Green               string
	Yellow              string
	Blue                string
	Border              string
	BrightWhite         string
}

// paletteFile matches the colors.toml layout used by terminal themes.
type paletteFile struct {
	Accent              string `toml:"accent"`
	Foreground          string `toml:"foreground"`
	Background          string `toml:"background"`
	SelectionForeground string `toml:"selection_foreground"`
	SelectionBackground string `toml:"selection_background"`
	Color0              string `toml:"color0"`
	Color1              string `toml:"color1"`
	Color2              string `toml:"color2"`
	Color3              string `toml:"color3"`
	Color4              string `toml:"color4"`
	Color8              string `toml:"color8"`
	Color15             string `toml:"color15"`
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		Foreground:          "#e5e7eb",
		Background:          "#1a1b26",
		Accent:              "#14b8a6",
		SelectionForeground: "#0f172a",
		SelectionBackground: "#14b8a6",
		Dim:                 "#6b7280",
		Red:                 "#ef4444",
		Green:               "#22c55e",
		Yellow:              "#eab308",
		Blue:                "#3b82f6",
		Border:              "#374151",
		BrightWhite:         "#f9fafb",
	}
}

// ThemePath returns the palette file for appName, or "" without a home dir.
func ThemePath(appName string) string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appName, "colors.toml")
}

// LoadTheme overlays the palette at path on the defaults. Unreadable files
// yield the defaults.
func LoadTheme(path string) Theme {
	t := DefaultTheme()
	if path == "" {
		return t
	}
	var pf paletteFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return t
	}
	for _, o := range []struct {
		dst *string
		src string
	}{
		{&t.Foreground, pf.Foreground},
		{&t.Background, pf.Background},
		{&t.Accent, pf.Accent},
		{&t.SelectionForeground, pf.SelectionForeground},
		{&t.SelectionBackground, pf.SelectionBackground},
		{&t.Dim, pf.Color0},
		{&t.Red, pf.Color1},
		{&t.Green, pf.Color2},
		{&t.Yellow, pf.Color3},
		{&t.Blue, pf.Color4},
		{&t.Border, pf.Color8},
		{&t.BrightWhite, pf.Color15},
	} {
		if o.src != "" {
			*o.dst = o.src
		}
	}
	return t
}
