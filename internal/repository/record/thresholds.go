package record

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadThresholds reads a field→threshold map from a YAML or JSON file.
// An empty path yields an empty map.
func LoadThresholds(path string) (map[string]float64, error) {
	out := map[string]float64{}
	if path == "" {
		return out, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read thresholds %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse thresholds %s: %w", path, err)
	}
	if out == nil {
		out = map[string]float64{}
	}
	return out, nil
}
