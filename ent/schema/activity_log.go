package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ActivityLog is an append-only feed shown on the dashboard.
type ActivityLog struct {
	ent.Schema
}

func (ActivityLog) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("id"),
		field.String("kind").
			NotEmpty().
			Comment("test_attempt, syllabus_update or settings"),
		field.String("description"),
		field.Int64("created_at").
			Comment("Unix milliseconds"),
	}
}

func (ActivityLog) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}
