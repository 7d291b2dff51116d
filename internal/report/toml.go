// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// WriteTOML writes s to path, replacing any existing file.
func WriteTOML(path string, s *Summary) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReadTOML loads a report written by WriteTOML.
func ReadTOML(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var s Summary
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", path, err)
	}
	return &s, nil
}
