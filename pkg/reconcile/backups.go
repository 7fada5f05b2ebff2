package reconcile

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/spf13/afero"
)

// DefaultBackupSuffix is appended by pkg to every file it overwrites
const DefaultBackupSuffix = ".pkgsave"

// FindBackups walks roots for regular files ending in suffix. Directories
// listed in skip are not descended into, and unreadable directories are
// skipped with a warning. The result is sorted and free of duplicates.
func FindBackups(fsys afero.Fs, roots []string, suffix string, skip []string) ([]string, error) {
	logger := logging.GetLogger("reconcile")

	skipSet := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipSet[filepath.Clean(s)] = true
	}

	found := make(map[string]bool)
	for _, root := range roots {
		err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable path")
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				if skipSet[filepath.Clean(path)] {
					return filepath.SkipDir
				}
				return nil
			}
			if info.Mode().IsRegular() && strings.HasSuffix(path, suffix) && len(filepath.Base(path)) > len(suffix) {
				found[path] = true
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	out := make([]string, 0, len(found))
	for p := range found {
		out = append(out, p)
	}
	sort.Strings(out)
	logger.Debug().Int("count", len(out)).Msg("Found backup files")
	return out, nil
}
