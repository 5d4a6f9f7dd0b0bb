package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// UsageDay accumulates study time per local calendar day.
type UsageDay struct {
	ent.Schema
}

func (UsageDay) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("Local date, YYYY-MM-DD"),
		field.Int64("study_ms").
			Default(0),
	}
}
