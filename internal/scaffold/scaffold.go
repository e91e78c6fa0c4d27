// Package scaffold creates a starter .rpyfmt.yaml.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/rpyfmt/internal/config"
)

const starterConfig = `# rpyfmt configuration. Every field is optional.

# Line length for python: blocks.
line-length: 88

# $ statements get a large limit so they stay on one line.
inline-line-length: 1000

# The external formatting engine and extra arguments for it.
engine: black
engine-args: []

# Seconds allowed per region invocation.
timeout: 60

# tab-policy reject refuses regions that mix tabs and spaces;
# expand rewrites tabs at tab-width stops instead.
tab-policy: reject
tab-width: 8

# Exit non-zero when any region fails to format.
strict: false

# Globs skipped when a directory is given.
exclude: []
`

// Init writes a starter config into dir. Refuses to overwrite an existing
// one.
func Init(dir string) (string, error) {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0644); err != nil {
		return "", err
	}
	return path, nil
}
