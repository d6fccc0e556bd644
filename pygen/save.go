package pygen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/confgen/confgen/errors"
	"github.com/confgen/confgen/logger"
)

// Save writes rendered module text under outputDir. The pattern names the
// relative file path and may reference {{module_path}}, the slash form of
// the generated module's dotted path. Parent directories are created as
// needed; an existing file at the target is overwritten, matching the
// regenerate-in-place workflow.
func Save(outputDir, pattern, modulePath, content string) (string, error) {
	rel := strings.NewReplacer("{{module_path}}", modulePath).Replace(pattern)
	path := filepath.Join(outputDir, rel)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrapf(err, "creating output directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}

	logger.Infow("wrote schema module", "path", path, "bytes", len(content))
	return path, nil
}
