package optsettings

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a settings document from path and compiles it into an
// immutable Settings, mirroring the JSON-sidecar loading convention
// cmd/parse.go uses for event metadata: os.ReadFile, json.Unmarshal, a
// wrapped error on either failure.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("optsettings: read %s: %w", path, err)
	}
	var raw RawSettings
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("optsettings: parse %s: %w", path, err)
	}
	s, err := NewSettings(raw)
	if err != nil {
		return nil, fmt.Errorf("optsettings: build %s: %w", path, err)
	}
	return s, nil
}
