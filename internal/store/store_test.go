package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"entgo.io/ent"

	entschema "github.com/abhisek/prepiz/ent/schema"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestTablesMatchEntSchema(t *testing.T) {
	tests := []struct {
		name   string
		fields []ent.Field
		table  string
	}{
		{"attempt", entschema.Attempt{}.Fields(), AttemptsTable.Name},
		{"tracking item", entschema.TrackingItem{}.Fields(), TrackingItemsTable.Name},
		{"usage day", entschema.UsageDay{}.Fields(), UsageDaysTable.Name},
		{"streak", entschema.Streak{}.Fields(), StreaksTable.Name},
		{"preference", entschema.Preference{}.Fields(), PreferencesTable.Name},
		{"activity log", entschema.ActivityLog{}.Fields(), ActivityLogsTable.Name},
	}

	byName := make(map[string][]string)
	for _, tbl := range Tables {
		for _, c := range tbl.Columns {
			byName[tbl.Name] = append(byName[tbl.Name], c.Name)
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var want []string
			for _, f := range tt.fields {
				want = append(want, f.Descriptor().Name)
			}
			got := byName[tt.table]
			if strings.Join(got, ",") != strings.Join(want, ",") {
				t.Errorf("table %s columns = %v, schema fields = %v", tt.table, got, want)
			}
		})
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := t.TempDir() + "/prepiz.db"
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Preferences().Set(ctx, "username", "asha"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Preferences().Get(ctx, "username")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "asha" {
		t.Errorf("username = %q, want asha", got)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Attempts().Record(ctx, sampleAttempt("s1", "Polity", 50, time.Now())); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Activity().Append(ctx, "test_attempt", "done", time.Now()); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	n, err := s.Attempts().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("attempts after reset = %d, want 0", n)
	}
	feed, err := s.Activity().Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(feed) != 0 {
		t.Errorf("activity after reset = %d, want 0", len(feed))
	}
}

func TestPreferences(t *testing.T) {
	s := openTestStore(t)
	repo := s.Preferences()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "app_theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: err = %v, want ErrNotFound", err)
	}

	for _, v := range []string{"dark", "light"} {
		if err := repo.Set(ctx, "app_theme", v); err != nil {
			t.Fatalf("set %s: %v", v, err)
		}
	}

	got, err := repo.Get(ctx, "app_theme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "light" {
		t.Errorf("app_theme = %q, want light", got)
	}
}

func TestActivityRecentOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.Activity()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := range 12 {
		if err := repo.Append(ctx, "test_attempt", fmt.Sprintf("entry %d", i), base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[0].Description != "entry 11" {
		t.Errorf("first = %q, want entry 11", got[0].Description)
	}
	if !got[0].CreatedAt.Equal(base.Add(11 * time.Minute)) {
		t.Errorf("created_at = %v", got[0].CreatedAt)
	}
}
