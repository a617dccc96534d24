package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schoolhq/registrar/internal/catalog"
	"github.com/schoolhq/registrar/internal/config"
)

// EnsureDataFiles creates the data directory and default persisted files on
// first run: an empty student mapping, a zero balance, and the default
// course catalog. Existing files are never touched; a damaged file must
// fail the subsequent Load rather than be silently replaced.
func EnsureDataFiles(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	if err := writeIfMissing(cfg.StudentsFile, []byte("{}\n")); err != nil {
		return err
	}
	if err := writeIfMissing(cfg.BalanceFile, []byte("0\n")); err != nil {
		return err
	}

	courses, err := json.Marshal(catalog.DefaultCourses)
	if err != nil {
		return fmt.Errorf("encode default catalog: %w", err)
	}
	return writeIfMissing(cfg.CoursesFile, append(courses, '\n'))
}

func writeIfMissing(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("initialize %s: %w", path, err)
	}
	return nil
}
