package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// seedBatch bounds the number of rows per INSERT statement.
const seedBatch = 100

type trackingRepo struct {
	store *Store
}

func (r *trackingRepo) Seed(ctx context.Context, items []TrackingRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	for start := 0; start < len(items); start += seedBatch {
		end := min(start+seedBatch, len(items))
		ins := sqlite.Insert(TrackingItemsTable.Name).
			Columns("id", "subject_name", "unit_name", "sub_topic_name", "item_name", "status", "updated_at").
			OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing())
		for _, it := range items[start:end] {
			status := it.Status
			if status == "" {
				status = StatusNotStarted
			}
			ins.Values(it.ItemID, it.Subject, it.Unit, it.SubTopic, it.Name, string(status), it.UpdatedAt.UnixMilli())
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed tracking items: %w", err)
		}
	}
	return tx.Commit()
}

func (r *trackingRepo) SetStatus(ctx context.Context, itemID string, status TrackingStatus, at time.Time) error {
	query, args := sqlite.Update(TrackingItemsTable.Name).
		Set("status", string(status)).
		Set("updated_at", at.UnixMilli()).
		Where(entsql.EQ("id", itemID)).
		Query()
	res, err := r.store.exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tracking item %s: %w", itemID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tracking item %s: %w", itemID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *trackingRepo) Statuses(ctx context.Context) (map[string]TrackingStatus, error) {
	query, args := sqlite.Select("id", "status").
		From(sqlite.Table(TrackingItemsTable.Name)).
		Query()
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query statuses: %w", err)
	}
	defer rows.Close()

	out := make(map[string]TrackingStatus)
	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		out[id] = TrackingStatus(status)
	}
	return out, rows.Err()
}

func (r *trackingRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx, nil)
}

func (r *trackingRepo) CompletedCount(ctx context.Context) (int, error) {
	return r.count(ctx, entsql.EQ("status", string(StatusCompleted)))
}

func (r *trackingRepo) count(ctx context.Context, where *entsql.Predicate) (int, error) {
	sel := sqlite.Select(entsql.Count("*")).From(sqlite.Table(TrackingItemsTable.Name))
	if where != nil {
		sel.Where(where)
	}
	query, args := sel.Query()
	var n int
	if err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tracking items: %w", err)
	}
	return n, nil
}

func (r *trackingRepo) BySubject(ctx context.Context) ([]SubjectCount, error) {
	totals, order, err := r.groupCount(ctx, nil)
	if err != nil {
		return nil, err
	}
	done, _, err := r.groupCount(ctx, entsql.EQ("status", string(StatusCompleted)))
	if err != nil {
		return nil, err
	}

	out := make([]SubjectCount, 0, len(order))
	for _, subject := range order {
		out = append(out, SubjectCount{
			Subject:   subject,
			Completed: done[subject],
			Total:     totals[subject],
		})
	}
	return out, nil
}

// groupCount counts tracking rows per subject. The returned slice lists
// subjects in ascending order.
func (r *trackingRepo) groupCount(ctx context.Context, where *entsql.Predicate) (map[string]int, []string, error) {
	sel := sqlite.Select("subject_name", entsql.Count("*")).
		From(sqlite.Table(TrackingItemsTable.Name)).
		GroupBy("subject_name").
		OrderBy("subject_name")
	if where != nil {
		sel.Where(where)
	}
	query, args := sel.Query()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("group tracking items: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	var order []string
	for rows.Next() {
		var (
			subject string
			n       int
		)
		if err := rows.Scan(&subject, &n); err != nil {
			return nil, nil, fmt.Errorf("scan subject count: %w", err)
		}
		counts[subject] = n
		order = append(order, subject)
	}
	return counts, order, rows.Err()
}

func (r *trackingRepo) Upcoming(ctx context.Context, limit int) ([]TrackingRecord, error) {
	sel := sqlite.Select("id", "subject_name", "unit_name", "sub_topic_name", "item_name", "status", "updated_at").
		From(sqlite.Table(TrackingItemsTable.Name)).
		Where(entsql.NEQ("status", string(StatusCompleted))).
		OrderBy(entsql.Desc("updated_at"), "id")
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query upcoming items: %w", err)
	}
	defer rows.Close()

	var out []TrackingRecord
	for rows.Next() {
		var (
			rec       TrackingRecord
			status    string
			updatedAt int64
		)
		if err := rows.Scan(&rec.ItemID, &rec.Subject, &rec.Unit, &rec.SubTopic, &rec.Name, &status, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan tracking item: %w", err)
		}
		rec.Status = TrackingStatus(status)
		rec.UpdatedAt = time.UnixMilli(updatedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
