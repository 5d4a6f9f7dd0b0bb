package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Preference is a key/value store for user settings (theme, username).
type Preference struct {
	ent.Schema
}

func (Preference) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Comment("Preference key"),
		field.String("value"),
	}
}
