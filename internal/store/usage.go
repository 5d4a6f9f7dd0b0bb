package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// streakRowID is the fixed primary key of the single streak row.
const streakRowID = 1

type usageRepo struct {
	store *Store
}

func (r *usageRepo) AddStudy(ctx context.Context, day string, d time.Duration) error {
	_, err := r.store.exec(ctx,
		`INSERT INTO usage_days (id, study_ms) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET study_ms = study_ms + excluded.study_ms`,
		day, d.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("add study for %s: %w", day, err)
	}
	return nil
}

func (r *usageRepo) Study(ctx context.Context, days ...string) (time.Duration, error) {
	if len(days) == 0 {
		return 0, nil
	}
	ids := make([]any, len(days))
	for i, d := range days {
		ids[i] = d
	}
	query, args := sqlite.Select(entsql.Sum("study_ms")).
		From(sqlite.Table(UsageDaysTable.Name)).
		Where(entsql.In("id", ids...)).
		Query()
	var ms sql.NullInt64
	if err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&ms); err != nil {
		return 0, fmt.Errorf("sum study: %w", err)
	}
	return time.Duration(ms.Int64) * time.Millisecond, nil
}

func (r *usageRepo) Streak(ctx context.Context) (string, int, error) {
	query, args := sqlite.Select("last_date", "count").
		From(sqlite.Table(StreaksTable.Name)).
		Where(entsql.EQ("id", streakRowID)).
		Query()
	var (
		last  string
		count int
	)
	err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&last, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("read streak: %w", err)
	}
	return last, count, nil
}

func (r *usageRepo) SaveStreak(ctx context.Context, lastDate string, count int) error {
	query, args := sqlite.Insert(StreaksTable.Name).
		Columns("id", "last_date", "count").
		Values(streakRowID, lastDate, count).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.store.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}
