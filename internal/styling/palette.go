package styling

// Named palettes a user can pick from.
var Palettes = map[string][]string{
	"default": {"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6", "#ec4899"},
	"pastel":  {"#a5b4fc", "#fbcfe8", "#bbf7d0", "#fde68a", "#bae6fd", "#ddd6fe"},
	"vivid":   {"#2563eb", "#dc2626", "#059669", "#d97706", "#7c3aed", "#db2777"},
	"mono":    {"#0f172a", "#334155", "#64748b", "#94a3b8", "#cbd5e1", "#e2e8f0"},
}

// fallbackPalette supplies extension colors when a chosen palette runs
// short of the data-point count.
var fallbackPalette = []string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6",
	"#ec4899", "#14b8a6", "#f97316", "#6366f1", "#84cc16",
}

// Palette returns a named palette, or the default one for unknown names.
func Palette(name string) []string {
	if p, ok := Palettes[name]; ok {
		return p
	}
	return Palettes["default"]
}

// ExtendColors sizes a palette to n data points. A short palette is
// extended by cycling through the built-in fallback palette rather than
// repeating its own last color.
func ExtendColors(palette []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, 0, n)
	for i := 0; i < n && i < len(palette); i++ {
		out = append(out, palette[i])
	}
	for i := len(out); i < n; i++ {
		out = append(out, fallbackPalette[i%len(fallbackPalette)])
	}
	return out
}

// Default computes the Default authority: palette colors sized to the
// current data-point count, default typography. Write-once per session.
func Default(palette []string, pointCount int) ChartStyling {
	if len(palette) == 0 {
		palette = Palettes["default"]
	}
	return ChartStyling{
		Colors:     ExtendColors(palette, pointCount),
		Typography: DefaultTypography(),
	}
}
