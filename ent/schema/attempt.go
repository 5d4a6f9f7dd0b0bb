package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Attempt records one finished quiz session with its aggregate scores.
// Rows are written once and never updated.
type Attempt struct {
	ent.Schema
}

func (Attempt) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("id"),
		field.String("session_id").
			NotEmpty().
			Unique().
			Immutable().
			Comment("UUID of the quiz session that produced the attempt"),
		field.Enum("mode").
			Values("subject", "unit", "gs_paper").
			Immutable(),
		field.String("subject_name").
			Optional().
			Nillable().
			Comment("Set for subject and unit modes"),
		field.String("unit_name").
			Optional().
			Nillable(),
		field.String("gs_paper").
			Optional().
			Nillable(),
		field.Int64("created_at").
			Immutable().
			Comment("Unix milliseconds when the session finished"),
		field.Bytes("payload").
			Comment("Versioned JSON of the served questions and answers"),
		field.String("payload_version"),
		field.Int("total_questions"),
		field.Int("correct_count"),
		field.Int("wrong_count"),
		field.Int("skipped_count"),
		field.Float("score"),
		field.Float("percentage"),
		field.Int("time_taken_secs"),
	}
}

func (Attempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
		index.Fields("subject_name"),
	}
}
