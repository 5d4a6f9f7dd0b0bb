package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table column sets. Names and types track the declarations in ent/schema.
var (
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "session_id", Type: field.TypeString, Unique: true},
		{Name: "mode", Type: field.TypeEnum, Enums: []string{"subject", "unit", "gs_paper"}},
		{Name: "subject_name", Type: field.TypeString, Nullable: true},
		{Name: "unit_name", Type: field.TypeString, Nullable: true},
		{Name: "gs_paper", Type: field.TypeString, Nullable: true},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "payload", Type: field.TypeBytes},
		{Name: "payload_version", Type: field.TypeString},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "correct_count", Type: field.TypeInt},
		{Name: "wrong_count", Type: field.TypeInt},
		{Name: "skipped_count", Type: field.TypeInt},
		{Name: "score", Type: field.TypeFloat64},
		{Name: "percentage", Type: field.TypeFloat64},
		{Name: "time_taken_secs", Type: field.TypeInt},
	}
	AttemptsTable = &schema.Table{
		Name:       "attempts",
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attempt_created_at", Columns: []*schema.Column{AttemptsColumns[6]}},
			{Name: "attempt_subject_name", Columns: []*schema.Column{AttemptsColumns[3]}},
		},
	}

	TrackingItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "subject_name", Type: field.TypeString},
		{Name: "unit_name", Type: field.TypeString},
		{Name: "sub_topic_name", Type: field.TypeString},
		{Name: "item_name", Type: field.TypeString},
		{Name: "status", Type: field.TypeEnum, Enums: []string{"not_started", "in_progress", "completed"}, Default: "not_started"},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	TrackingItemsTable = &schema.Table{
		Name:       "tracking_items",
		Columns:    TrackingItemsColumns,
		PrimaryKey: []*schema.Column{TrackingItemsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "trackingitem_subject_name", Columns: []*schema.Column{TrackingItemsColumns[1]}},
			{Name: "trackingitem_status", Columns: []*schema.Column{TrackingItemsColumns[5]}},
		},
	}

	UsageDaysColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "study_ms", Type: field.TypeInt64, Default: 0},
	}
	UsageDaysTable = &schema.Table{
		Name:       "usage_days",
		Columns:    UsageDaysColumns,
		PrimaryKey: []*schema.Column{UsageDaysColumns[0]},
	}

	StreaksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "last_date", Type: field.TypeString},
		{Name: "count", Type: field.TypeInt},
	}
	StreaksTable = &schema.Table{
		Name:       "streaks",
		Columns:    StreaksColumns,
		PrimaryKey: []*schema.Column{StreaksColumns[0]},
	}

	PreferencesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "value", Type: field.TypeString},
	}
	PreferencesTable = &schema.Table{
		Name:       "preferences",
		Columns:    PreferencesColumns,
		PrimaryKey: []*schema.Column{PreferencesColumns[0]},
	}

	ActivityLogsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "kind", Type: field.TypeString},
		{Name: "description", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeInt64},
	}
	ActivityLogsTable = &schema.Table{
		Name:       "activity_logs",
		Columns:    ActivityLogsColumns,
		PrimaryKey: []*schema.Column{ActivityLogsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "activitylog_created_at", Columns: []*schema.Column{ActivityLogsColumns[3]}},
		},
	}

	// Tables holds every table the store manages.
	Tables = []*schema.Table{
		AttemptsTable,
		TrackingItemsTable,
		UsageDaysTable,
		StreaksTable,
		PreferencesTable,
		ActivityLogsTable,
	}
)

// migrate creates missing tables and columns. It never drops anything.
func (s *Store) migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
