package styling

import "encoding/json"

// Font size bounds for chart text.
const (
	MinFontSize = 8
	MaxFontSize = 48
)

// Typography is the text appearance of a chart.
type Typography struct {
	FontSize    int    `json:"fontSize"`
	FontFamily  string `json:"fontFamily"`
	Color       string `json:"color"`
	IsBold      bool   `json:"isBold"`
	IsItalic    bool   `json:"isItalic"`
	IsUnderline bool   `json:"isUnderline"`
}

// ChartStyling is one authority's view of a chart's appearance.
type ChartStyling struct {
	Colors     []string   `json:"colors"`
	Typography Typography `json:"typography"`
}

// DefaultTypography is the computed-default text appearance.
func DefaultTypography() Typography {
	return Typography{
		FontSize:   12,
		FontFamily: "Inter",
		Color:      "#1f2937",
	}
}

// Clone returns a deep copy; authorities never share color slices.
func (s ChartStyling) Clone() ChartStyling {
	out := s
	out.Colors = append([]string(nil), s.Colors...)
	return out
}

// Snapshot serializes the styling for change detection. External updates
// are detected by comparing snapshots, never by reference.
func (s ChartStyling) Snapshot() string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}

func clampFontSize(n int) int {
	if n < MinFontSize {
		return MinFontSize
	}
	if n > MaxFontSize {
		return MaxFontSize
	}
	return n
}
