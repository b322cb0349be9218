// Package mock provides test doubles for tutor interfaces using function fields.
package mock

import (
	"context"

	"github.com/onbuch/tutor"
)

// Interface compliance checks.
var (
	_ tutor.ChatModel      = (*ChatModel)(nil)
	_ tutor.ConfigProvider = (*ConfigProvider)(nil)
	_ tutor.SettingsStore  = (*SettingsStore)(nil)
	_ tutor.IntentDetector = (*IntentDetector)(nil)
	_ tutor.Evaluator      = (*Evaluator)(nil)
	_ tutor.Responder      = (*Responder)(nil)
)

// ChatModel is a test double for tutor.ChatModel.
// Set ChatFn before calling Chat.
type ChatModel struct {
	ChatFn func(ctx context.Context, req tutor.ChatRequest) (string, error)
}

// Chat delegates to ChatFn.
func (m *ChatModel) Chat(ctx context.Context, req tutor.ChatRequest) (string, error) {
	return m.ChatFn(ctx, req)
}

// ConfigProvider is a test double for tutor.ConfigProvider.
type ConfigProvider struct {
	APIKeyFn            func(ctx context.Context) (string, error)
	SystemInstructionFn func(ctx context.Context) (string, error)
}

// APIKey delegates to APIKeyFn.
func (p *ConfigProvider) APIKey(ctx context.Context) (string, error) {
	return p.APIKeyFn(ctx)
}

// SystemInstruction delegates to SystemInstructionFn.
func (p *ConfigProvider) SystemInstruction(ctx context.Context) (string, error) {
	return p.SystemInstructionFn(ctx)
}

// SettingsStore is a test double for tutor.SettingsStore.
type SettingsStore struct {
	SettingFn func(ctx context.Context, key string) (string, error)
}

// Setting delegates to SettingFn.
func (s *SettingsStore) Setting(ctx context.Context, key string) (string, error) {
	return s.SettingFn(ctx, key)
}

// IntentDetector is a test double for tutor.IntentDetector.
type IntentDetector struct {
	DetectFn func(message string) (string, bool)
}

// Detect delegates to DetectFn.
func (d *IntentDetector) Detect(message string) (string, bool) {
	return d.DetectFn(message)
}

// Evaluator is a test double for tutor.Evaluator.
type Evaluator struct {
	CompileFn func(expression string) (tutor.Function, error)
}

// Compile delegates to CompileFn.
func (e *Evaluator) Compile(expression string) (tutor.Function, error) {
	return e.CompileFn(expression)
}

// Responder is a test double for tutor.Responder.
type Responder struct {
	RespondFn func(ctx context.Context, req tutor.Request) (tutor.Reply, error)
}

// Respond delegates to RespondFn.
func (r *Responder) Respond(ctx context.Context, req tutor.Request) (tutor.Reply, error) {
	return r.RespondFn(ctx, req)
}
