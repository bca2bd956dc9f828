package styles

// NewDefaultTheme creates the default dark theme for Ask Buddy.
func NewDefaultTheme() *Theme {
	return &Theme{
		Name:   "default",
		IsDark: true,

		// Emerald/teal tones
		Primary:   ParseHex("#34d399"), // Emerald
		Secondary: ParseHex("#2dd4bf"), // Teal
		Tertiary:  ParseHex("#3e4451"), // Dark gray-blue
		Accent:    ParseHex("#a7f3d0"), // Pale mint accent

		// Dark backgrounds
		BgBase:    ParseHex("#1e1e1e"),
		BgSubtle:  ParseHex("#252526"),
		BgOverlay: ParseHex("#2d2d30"),

		// Light foregrounds
		FgBase:   ParseHex("#d4d4d4"),
		FgMuted:  ParseHex("#8a919e"),
		FgSubtle: ParseHex("#5c6370"),

		// Borders
		Border:      ParseHex("#3e4451"),
		BorderFocus: ParseHex("#34d399"),

		// Status colors
		Success: ParseHex("#98c379"),
		Error:   ParseHex("#e06c75"),
		Warning: ParseHex("#e5c07b"),
		Info:    ParseHex("#61afef"),
	}
}
