package styling

// Resolve picks the styling for a chart being (re)displayed. Precedence:
// styling already cached for this session, then the persisted snapshot
// bundled with the chart record, then a caller-supplied default, then the
// computed default from the palette.
func Resolve(cached, persisted, fallback *ChartStyling, palette []string, pointCount int) ChartStyling {
	for _, s := range []*ChartStyling{cached, persisted, fallback} {
		if s != nil && !s.isZero() {
			return s.Clone()
		}
	}
	return Default(palette, pointCount)
}

func (s ChartStyling) isZero() bool {
	return len(s.Colors) == 0 && s.Typography == (Typography{})
}
