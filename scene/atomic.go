//go:build !windows

package scene

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0o644)
}
