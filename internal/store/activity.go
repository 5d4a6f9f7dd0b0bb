package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type activityRepo struct {
	store *Store
}

func (r *activityRepo) Append(ctx context.Context, kind, description string, at time.Time) error {
	query, args := sqlite.Insert(ActivityLogsTable.Name).
		Columns("kind", "description", "created_at").
		Values(kind, description, at.UnixMilli()).
		Query()
	if _, err := r.store.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func (r *activityRepo) Recent(ctx context.Context, limit int) ([]ActivityRecord, error) {
	sel := sqlite.Select("id", "kind", "description", "created_at").
		From(sqlite.Table(ActivityLogsTable.Name)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []ActivityRecord
	for rows.Next() {
		var (
			rec ActivityRecord
			ms  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Description, &ms); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(ms)
		out = append(out, rec)
	}
	return out, rows.Err()
}
