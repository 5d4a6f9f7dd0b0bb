package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Streak is a single-row table holding the consecutive study-day counter.
type Streak struct {
	ent.Schema
}

func (Streak) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id"),
		field.String("last_date").
			Comment("Local date of the last study day, YYYY-MM-DD"),
		field.Int("count").
			NonNegative(),
	}
}
