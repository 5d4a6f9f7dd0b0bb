package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/prepiz/internal/store"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	st, err := store.Open(fmt.Sprintf("file:settings_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st.Preferences(), st.Activity(), nil), st
}

func TestDefaults(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	theme, err := svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeSystem, theme)

	name, err := svc.Username(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultUsername, name)
}

func TestSetAndGet(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, KeyTheme, "DARK"))
	require.NoError(t, svc.Set(ctx, KeyUsername, "  Meera  "))

	theme, _ := svc.Get(ctx, KeyTheme)
	assert.Equal(t, "dark", theme)
	name, _ := svc.Get(ctx, KeyUsername)
	assert.Equal(t, "Meera", name)

	feed, err := st.Activity().Recent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestSetRejectsInvalid(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	assert.Error(t, svc.Set(ctx, KeyTheme, "sepia"))
	assert.Error(t, svc.Set(ctx, KeyUsername, "   "))
	assert.Error(t, svc.Set(ctx, KeyUsername, strings.Repeat("x", 41)))
	assert.Error(t, svc.Set(ctx, "font", "mono"))
	_, err := svc.Get(ctx, "font")
	assert.Error(t, err)
}

func TestStoredGarbageThemeFallsBack(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	require.NoError(t, st.Preferences().Set(ctx, KeyTheme, "neon"))

	theme, err := svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeSystem, theme)
}

func TestParseTheme(t *testing.T) {
	for _, in := range []string{"light", "Dark", " system "} {
		_, err := ParseTheme(in)
		assert.NoError(t, err, in)
	}
}

type failingActivity struct{}

func (failingActivity) Append(context.Context, string, string, time.Time) error {
	return errors.New("disk full")
}

func (failingActivity) Recent(context.Context, int) ([]store.ActivityRecord, error) {
	return nil, nil
}

func TestActivityFailureIsLogged(t *testing.T) {
	_, st := newService(t)
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewService(st.Preferences(), failingActivity{}, zap.New(core))
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, KeyUsername, "Meera"))
	name, err := svc.Username(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Meera", name)

	entries := logs.FilterMessage("append activity").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "disk full", entries[0].ContextMap()["error"])
}
