package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/onbuch/tutor"
)

// historyEnvelope is the v1 on-disk format of a conversation.
type historyEnvelope struct {
	Version   int       `json:"version"`
	Profile   string    `json:"profile"`
	UpdatedAt time.Time `json:"updated_at"`
	Turns     []turnDTO `json:"turns"`
}

// History is a conversation saved by the CLI between invocations.
type History struct {
	Profile   string
	UpdatedAt time.Time
	Turns     []tutor.Turn
}

// MarshalHistory serializes a History in v1 envelope format.
func MarshalHistory(h History) ([]byte, error) {
	env := historyEnvelope{
		Version:   1,
		Profile:   h.Profile,
		UpdatedAt: h.UpdatedAt,
		Turns:     turnsToDTO(h.Turns),
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalHistory deserializes a History in v1 envelope format.
func UnmarshalHistory(data []byte) (History, error) {
	var env historyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return History{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return History{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	turns, err := turnsFromDTO(env.Turns)
	if err != nil {
		return History{}, err
	}
	return History{
		Profile:   env.Profile,
		UpdatedAt: env.UpdatedAt,
		Turns:     turns,
	}, nil
}

// Save writes a History to a JSON file, creating parent directories as needed.
func Save(path string, h History) error {
	data, err := MarshalHistory(h)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a History from a JSON file.
func Load(path string) (History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return History{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalHistory(data)
}
