package plan

import (
	"fmt"
	"os"
	"strings"
)

// NormalizeFilename ensures the target filename ends in ".json" without
// doubling the suffix when the caller already included it.
func NormalizeFilename(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}

// WriteDocument writes serialized plan JSON to path in one synchronous
// write. An existing file at path is overwritten.
func WriteDocument(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// Save serializes the plan and writes it to path.
func (p *Plan) Save(path string) error {
	data, err := p.JSON()
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	return WriteDocument(path, data)
}
