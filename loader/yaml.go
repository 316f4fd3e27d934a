package loader

import (
	"fmt"
	"os"

	"github.com/gmeeker/conan-darwin-toolchain/model"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads and parses a YAML settings file.
// It validates the YAML against the JSON Schema before unmarshalling.
func LoadConfig(path string) (*model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig schema-validates and unmarshals settings from YAML bytes.
func ParseConfig(data []byte) (*model.Config, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	return &cfg, nil
}

// MarshalConfig renders settings as YAML, e.g. for `init`.
func MarshalConfig(cfg *model.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return data, nil
}
