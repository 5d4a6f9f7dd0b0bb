package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type preferenceRepo struct {
	store *Store
}

func (r *preferenceRepo) Get(ctx context.Context, key string) (string, error) {
	query, args := sqlite.Select("value").
		From(sqlite.Table(PreferencesTable.Name)).
		Where(entsql.EQ("id", key)).
		Query()
	var v string
	err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get preference %s: %w", key, err)
	}
	return v, nil
}

func (r *preferenceRepo) Set(ctx context.Context, key, value string) error {
	query, args := sqlite.Insert(PreferencesTable.Name).
		Columns("id", "value").
		Values(key, value).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.store.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}
