package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TrackingItem mirrors a syllabus leaf and carries its completion state.
type TrackingItem struct {
	ent.Schema
}

func (TrackingItem) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("Syllabus item_id"),
		field.String("subject_name"),
		field.String("unit_name"),
		field.String("sub_topic_name"),
		field.String("item_name"),
		field.Enum("status").
			Values("not_started", "in_progress", "completed").
			Default("not_started"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last status change"),
	}
}

func (TrackingItem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("subject_name"),
		index.Fields("status"),
	}
}
