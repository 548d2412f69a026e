// Package report persists the final analysis artifact.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vrothberg/testing-farm-package-analyzer/domain"
)

// Write serializes the report as indented JSON at the given path,
// overwriting any existing file.
func Write(path string, rep domain.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write report to %q: %w", path, writeErr)
	}
	return nil
}
