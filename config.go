package tutor

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Settings keys read from the SettingsStore.
const (
	SettingAPIKey               = "ai.gemini_api_key"
	SettingTutorInstruction     = "ai.tutor_instruction"
	SettingAssistantInstruction = "ai.assistant_instruction"
)

// ConfigProvider resolves the model configuration for one call. Values are
// resolved fresh on every call and never cached.
type ConfigProvider interface {
	APIKey(ctx context.Context) (string, error)
	SystemInstruction(ctx context.Context) (string, error)
}

// SettingsStore is the remote configuration store edited from the admin
// back-office. Setting returns ErrSettingNotFound for unknown keys.
type SettingsStore interface {
	Setting(ctx context.Context, key string) (string, error)
}

// Interface compliance check.
var _ ConfigProvider = (*Settings)(nil)

// Settings resolves configuration in order: settings store, then
// environment (API key only), then the profile default (instruction only).
type Settings struct {
	store   SettingsStore
	profile Profile
	envKey  string
	logger  *zap.Logger
}

// SettingsOption configures Settings.
type SettingsOption func(*Settings)

// WithEnvAPIKey sets the environment fallback for the API key. Environment
// variables are read by the caller and passed as values.
func WithEnvAPIKey(key string) SettingsOption {
	return func(s *Settings) { s.envKey = key }
}

// WithSettingsLogger sets the logger used to report store failures.
func WithSettingsLogger(l *zap.Logger) SettingsOption {
	return func(s *Settings) { s.logger = l }
}

// NewSettings creates Settings for profile. store may be nil.
func NewSettings(store SettingsStore, profile Profile, opts ...SettingsOption) *Settings {
	s := &Settings{store: store, profile: profile, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// APIKey returns the model key, or ErrMissingAPIKey when no source has one.
func (s *Settings) APIKey(ctx context.Context) (string, error) {
	if v := s.lookup(ctx, s.profile.APIKeySetting); v != "" {
		return v, nil
	}
	if s.envKey != "" {
		return s.envKey, nil
	}
	return "", ErrMissingAPIKey
}

// SystemInstruction returns the stored instruction or the profile default.
func (s *Settings) SystemInstruction(ctx context.Context) (string, error) {
	if v := s.lookup(ctx, s.profile.InstructionSetting); v != "" {
		return v, nil
	}
	return s.profile.DefaultInstruction, nil
}

// lookup reads key from the store. Store failures are logged and treated as
// a missing value.
func (s *Settings) lookup(ctx context.Context, key string) string {
	if s.store == nil || key == "" {
		return ""
	}
	v, err := s.store.Setting(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			s.logger.Warn("settings store lookup failed", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return v
}
