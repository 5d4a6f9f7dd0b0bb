// Package settings reads and writes user preferences (theme, username).
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abhisek/prepiz/internal/store"
)

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

const (
	KeyTheme    = "app_theme"
	KeyUsername = "username"
)

// DefaultUsername is shown until the user sets a name.
const DefaultUsername = "Aspirant"

// Keys lists the preference keys accepted by Get and Set.
func Keys() []string {
	return []string{KeyTheme, KeyUsername}
}

// ParseTheme parses a theme name, ignoring case.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light, dark or system)", s)
	}
}

type usernameInput struct {
	Name string `validate:"required,max=40"`
}

// Service is the settings facade used by the TUI and CLI.
type Service struct {
	prefs    store.PreferenceRepo
	activity store.ActivityRepo
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a Service. activity may be nil; a nil logger discards
// output.
func NewService(prefs store.PreferenceRepo, activity store.ActivityRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{prefs: prefs, activity: activity, validate: validator.New(), logger: logger.Named("settings")}
}

// Theme returns the stored theme, ThemeSystem when unset.
func (s *Service) Theme(ctx context.Context) (Theme, error) {
	v, err := s.prefs.Get(ctx, KeyTheme)
	if errors.Is(err, store.ErrNotFound) {
		return ThemeSystem, nil
	}
	if err != nil {
		return ThemeSystem, err
	}
	t, err := ParseTheme(v)
	if err != nil {
		return ThemeSystem, nil
	}
	return t, nil
}

// SetTheme stores the theme.
func (s *Service) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := s.prefs.Set(ctx, KeyTheme, string(t)); err != nil {
		return err
	}
	s.log(ctx, fmt.Sprintf("Theme set to %s", t))
	return nil
}

// Username returns the stored name, DefaultUsername when unset.
func (s *Service) Username(ctx context.Context) (string, error) {
	v, err := s.prefs.Get(ctx, KeyUsername)
	if errors.Is(err, store.ErrNotFound) {
		return DefaultUsername, nil
	}
	return v, err
}

// SetUsername trims and validates name before storing it.
func (s *Service) SetUsername(ctx context.Context, name string) error {
	in := usernameInput{Name: strings.TrimSpace(name)}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}
	if err := s.prefs.Set(ctx, KeyUsername, in.Name); err != nil {
		return err
	}
	s.log(ctx, fmt.Sprintf("Username changed to %s", in.Name))
	return nil
}

// Get returns a preference by key as text.
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	switch key {
	case KeyTheme:
		t, err := s.Theme(ctx)
		return string(t), err
	case KeyUsername:
		return s.Username(ctx)
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}

// Set stores a preference by key.
func (s *Service) Set(ctx context.Context, key, value string) error {
	switch key {
	case KeyTheme:
		t, err := ParseTheme(value)
		if err != nil {
			return err
		}
		return s.SetTheme(ctx, t)
	case KeyUsername:
		return s.SetUsername(ctx, value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}

func (s *Service) log(ctx context.Context, desc string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Append(ctx, "settings", desc, time.Now()); err != nil {
		s.logger.Warn("append activity", zap.String("description", desc), zap.Error(err))
	}
}
