package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the binary looks for settings when no -config flag is given.
const DefaultPath = "spin-sphere.yaml"

// Load reads settings from a YAML file layered over the preset for stage.
// A stage of 0 uses the file's own "stage" key, or MaxStage when absent.
// A missing file is not an error: the preset is returned as-is.
func Load(path string, stage int) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, stage)
}

// Parse is Load without the file system.
func Parse(data []byte, stage int) (Settings, error) {
	if stage == 0 {
		var head struct {
			Stage int `yaml:"stage"`
		}
		if err := yaml.Unmarshal(data, &head); err != nil {
			return Settings{}, fmt.Errorf("parse config: %w", err)
		}
		stage = head.Stage
	}
	if stage == 0 {
		stage = MaxStage
	}

	s, err := ForStage(stage)
	if err != nil {
		return Settings{}, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	// The file may not move the run to a different preset after the fact.
	s.Stage = stage

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}
