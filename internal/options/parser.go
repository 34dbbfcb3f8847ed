package options

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse decodes a configuration document. YAML is a superset of JSON, so both
// formats are accepted.
func Parse(data []byte) (Raw, error) {
	var raw Raw
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Raw{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return raw, nil
}

// ParseFile reads and decodes a configuration file.
func ParseFile(path string) (Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Raw{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	raw, err := Parse(data)
	if err != nil {
		return Raw{}, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}
