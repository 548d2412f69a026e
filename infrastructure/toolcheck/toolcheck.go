// Package toolcheck verifies that external companion tools are installed
// before the analyzer touches the network.
package toolcheck

import (
	"fmt"
	"os/exec"
	"strings"
)

// Verify checks that every named command resolves on the execution search
// path. All missing commands are reported together in a single error so
// the operator can fix them in one pass.
func Verify(tools []string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf(
			"required tools not found on PATH: %s", strings.Join(missing, ", "),
		)
	}
	return nil
}
