package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sqlite builds statements quoted for the SQLite dialect.
var sqlite = entsql.Dialect(dialect.SQLite)

var attemptColumns = []string{
	"id", "session_id", "mode", "subject_name", "unit_name", "gs_paper",
	"created_at", "payload", "payload_version", "total_questions",
	"correct_count", "wrong_count", "skipped_count", "score", "percentage",
	"time_taken_secs",
}

type attemptRepo struct {
	store *Store
}

func (r *attemptRepo) Record(ctx context.Context, rec AttemptRecord) (int64, error) {
	query, args := sqlite.Insert(AttemptsTable.Name).
		Columns(attemptColumns[1:]...).
		Values(
			rec.SessionID, rec.Mode,
			nullString(rec.Subject), nullString(rec.Unit), nullString(rec.Paper),
			rec.CreatedAt.UnixMilli(), rec.Payload, rec.PayloadVersion,
			rec.TotalQuestions, rec.CorrectCount, rec.WrongCount, rec.SkippedCount,
			rec.Score, rec.Percentage, rec.TimeTakenSecs,
		).
		Query()
	res, err := r.store.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("attempt id: %w", err)
	}
	return id, nil
}

func (r *attemptRepo) Get(ctx context.Context, id int64) (*AttemptRecord, error) {
	query, args := sqlite.Select(attemptColumns...).
		From(sqlite.Table(AttemptsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	recs, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return &recs[0], nil
}

func (r *attemptRepo) Count(ctx context.Context) (int, error) {
	query, args := sqlite.Select(entsql.Count("*")).
		From(sqlite.Table(AttemptsTable.Name)).
		Query()
	var n int
	if err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}

func (r *attemptRepo) AveragePercentage(ctx context.Context) (float64, error) {
	return r.aggregate(ctx, entsql.Avg("percentage"))
}

func (r *attemptRepo) BestPercentage(ctx context.Context) (float64, error) {
	return r.aggregate(ctx, entsql.Max("percentage"))
}

func (r *attemptRepo) AverageTimeSeconds(ctx context.Context) (float64, error) {
	return r.aggregate(ctx, entsql.Avg("time_taken_secs"))
}

// aggregate evaluates a single-value aggregate over all attempts.
// SQL NULL (no rows) is reported as 0.
func (r *attemptRepo) aggregate(ctx context.Context, expr string) (float64, error) {
	query, args := sqlite.Select(expr).
		From(sqlite.Table(AttemptsTable.Name)).
		Query()
	var v sql.NullFloat64
	if err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&v); err != nil {
		return 0, fmt.Errorf("aggregate %s: %w", expr, err)
	}
	return v.Float64, nil
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]AttemptRecord, error) {
	sel := sqlite.Select(attemptColumns...).
		From(sqlite.Table(AttemptsTable.Name)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *attemptRepo) ByMode(ctx context.Context, mode string) ([]AttemptRecord, error) {
	query, args := sqlite.Select(attemptColumns...).
		From(sqlite.Table(AttemptsTable.Name)).
		Where(entsql.EQ("mode", mode)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")).
		Query()
	return r.query(ctx, query, args)
}

func (r *attemptRepo) WeakAreas(ctx context.Context, threshold float64, limit int) ([]WeakArea, error) {
	avg := entsql.Avg("percentage")
	sel := sqlite.Select("subject_name", entsql.As(avg, "avg_pct"), entsql.As(entsql.Count("*"), "attempts")).
		From(sqlite.Table(AttemptsTable.Name)).
		Where(entsql.NotNull("subject_name")).
		GroupBy("subject_name").
		Having(entsql.LT(avg, threshold)).
		OrderBy("avg_pct", "subject_name")
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query weak areas: %w", err)
	}
	defer rows.Close()

	var out []WeakArea
	for rows.Next() {
		var w WeakArea
		if err := rows.Scan(&w.Subject, &w.AvgPercentage, &w.Attempts); err != nil {
			return nil, fmt.Errorf("scan weak area: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *attemptRepo) query(ctx context.Context, query string, args []any) ([]AttemptRecord, error) {
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var (
			rec                  AttemptRecord
			subject, unit, paper sql.NullString
			createdAt            int64
		)
		err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.Mode, &subject, &unit, &paper,
			&createdAt, &rec.Payload, &rec.PayloadVersion, &rec.TotalQuestions,
			&rec.CorrectCount, &rec.WrongCount, &rec.SkippedCount, &rec.Score,
			&rec.Percentage, &rec.TimeTakenSecs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Subject = subject.String
		rec.Unit = unit.String
		rec.Paper = paper.String
		rec.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
