package styling

// TypographyPatch is a partial typography edit; nil fields are untouched.
type TypographyPatch struct {
	FontSize    *int    `json:"fontSize,omitempty"`
	FontFamily  *string `json:"fontFamily,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsBold      *bool   `json:"isBold,omitempty"`
	IsItalic    *bool   `json:"isItalic,omitempty"`
	IsUnderline *bool   `json:"isUnderline,omitempty"`
}

// Patch is a partial styling edit. The pending-changes buffer is a Patch:
// its non-emptiness is the single source of truth for "unsaved work".
type Patch struct {
	Colors     []string         `json:"colors,omitempty"`
	Typography *TypographyPatch `json:"typography,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.Colors == nil && p.Typography == nil
}

// Merge folds a newer patch over p, field by field, so a burst of edits
// coalesces into the union with newest-wins per field.
func (p *Patch) Merge(newer Patch) {
	if newer.Colors != nil {
		p.Colors = append([]string(nil), newer.Colors...)
	}
	if newer.Typography == nil {
		return
	}
	if p.Typography == nil {
		p.Typography = &TypographyPatch{}
	}
	dst, src := p.Typography, newer.Typography
	if src.FontSize != nil {
		dst.FontSize = src.FontSize
	}
	if src.FontFamily != nil {
		dst.FontFamily = src.FontFamily
	}
	if src.Color != nil {
		dst.Color = src.Color
	}
	if src.IsBold != nil {
		dst.IsBold = src.IsBold
	}
	if src.IsItalic != nil {
		dst.IsItalic = src.IsItalic
	}
	if src.IsUnderline != nil {
		dst.IsUnderline = src.IsUnderline
	}
}

// Apply writes the patch onto a styling value. Font sizes clamp to the
// supported range.
func (s *ChartStyling) Apply(p Patch) {
	if p.Colors != nil {
		s.Colors = append([]string(nil), p.Colors...)
	}
	if p.Typography == nil {
		return
	}
	t := p.Typography
	if t.FontSize != nil {
		s.Typography.FontSize = clampFontSize(*t.FontSize)
	}
	if t.FontFamily != nil {
		s.Typography.FontFamily = *t.FontFamily
	}
	if t.Color != nil {
		s.Typography.Color = *t.Color
	}
	if t.IsBold != nil {
		s.Typography.IsBold = *t.IsBold
	}
	if t.IsItalic != nil {
		s.Typography.IsItalic = *t.IsItalic
	}
	if t.IsUnderline != nil {
		s.Typography.IsUnderline = *t.IsUnderline
	}
}
