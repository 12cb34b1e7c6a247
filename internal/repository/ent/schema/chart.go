package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Chart holds a saved chart record: its validated configuration and the
// styling snapshot bundled with it.
type Chart struct {
	ent.Schema
}

func (Chart) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable(),
		field.String("dataset_id").
			NotEmpty(),
		field.String("message_id").
			Default(""),
		field.JSON("config", map[string]any{}),
		field.JSON("styling", map[string]any{}).
			Optional(),
		field.Time("created_at").
			Default(time.Now),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (Chart) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("dataset_id"),
	}
}
