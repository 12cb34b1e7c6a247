package styling

import (
	"testing"

	"chartsmith/internal/tester"
)

func TestPalette_UnknownNameFallsBack(t *testing.T) {
	tester.Eq(t, Palette("pastel")[0], "#a5b4fc")
	tester.Eq(t, Palette("no-such-palette")[0], Palettes["default"][0])
	tester.Eq(t, Palette("")[0], Palettes["default"][0])
}

func TestExtendColors(t *testing.T) {
	base := []string{"#111111", "#222222"}

	got := ExtendColors(base, 2)
	tester.Eq(t, got, base)

	// More points than palette colors: the tail cycles through the
	// fallback palette instead of repeating the last color.
	got = ExtendColors(base, 5)
	tester.Eq(t, len(got), 5)
	tester.Eq(t, got[0], "#111111")
	tester.Eq(t, got[1], "#222222")
	tester.Eq(t, got[2], fallbackPalette[2])
	tester.Eq(t, got[4], fallbackPalette[4])

	tester.Eq(t, len(ExtendColors(base, 0)), 0)
	tester.Eq(t, len(ExtendColors(nil, 3)), 3)
}

func TestExtendColors_WrapsFallback(t *testing.T) {
	got := ExtendColors(nil, len(fallbackPalette)+2)
	tester.Eq(t, got[len(fallbackPalette)], fallbackPalette[0])
	tester.Eq(t, got[len(fallbackPalette)+1], fallbackPalette[1])
}

func TestDefault(t *testing.T) {
	s := Default(nil, 3)
	tester.Eq(t, len(s.Colors), 3)
	tester.Eq(t, s.Typography.FontSize, 12)
	tester.Eq(t, s.Typography.FontFamily, "Inter")
}

func TestResolve_Precedence(t *testing.T) {
	cached := ChartStyling{Colors: []string{"#c1"}, Typography: DefaultTypography()}
	persisted := ChartStyling{Colors: []string{"#p1"}, Typography: DefaultTypography()}

	got := Resolve(&cached, &persisted, nil, nil, 2)
	tester.Eq(t, got.Colors, cached.Colors)

	got = Resolve(nil, &persisted, nil, nil, 2)
	tester.Eq(t, got.Colors, persisted.Colors)

	// Nothing stored anywhere: computed default sized to the point count.
	got = Resolve(nil, nil, nil, Palettes["mono"], 2)
	tester.Eq(t, got.Colors, Palettes["mono"][:2])

	// A zero-value authority is skipped, not returned.
	var zero ChartStyling
	got = Resolve(&zero, nil, nil, nil, 1)
	tester.Eq(t, len(got.Colors), 1)
	tester.Eq(t, got.Typography, DefaultTypography())
}

func TestResolve_TypographyOnlyPersistedValueWins(t *testing.T) {
	persisted := ChartStyling{Typography: Typography{FontSize: 18, FontFamily: "Georgia"}}
	got := Resolve(nil, &persisted, nil, nil, 4)
	tester.Eq(t, got.Typography.FontFamily, "Georgia")
	tester.Eq(t, len(got.Colors), 0)
}

func TestResolve_ReturnsClone(t *testing.T) {
	persisted := ChartStyling{Colors: []string{"#p1", "#p2"}, Typography: DefaultTypography()}
	got := Resolve(nil, &persisted, nil, nil, 2)
	got.Colors[0] = "mutated"
	tester.Eq(t, persisted.Colors[0], "#p1")
}
