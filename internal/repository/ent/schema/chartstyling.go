package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ChartStyling holds persisted appearance by (record_kind, record_id),
// where record_kind is "chart" or "message".
type ChartStyling struct {
	ent.Schema
}

func (ChartStyling) Fields() []ent.Field {
	return []ent.Field{
		field.String("record_kind").
			NotEmpty(),
		field.String("record_id").
			NotEmpty(),
		field.JSON("styling", map[string]any{}),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (ChartStyling) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("record_kind", "record_id").Unique(),
	}
}
