package reconcile

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/filesystem"
	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/afero"
)

// Skip reasons reported for backups that were left alone
const (
	ReasonNoSnapshot = "no snapshot entry"
	ReasonNoLiveFile = "live file missing"
)

// Skipped is a backup that was not merged and stays on disk
type Skipped struct {
	Path   string
	Reason string
}

// Conflict is a file whose local edits could not be merged automatically.
// Diff shows the local version against the newly installed one.
type Conflict struct {
	Path   string
	Backup string
	Diff   string
}

// Failure is a file whose merge could not be carried out
type Failure struct {
	Path string
	Err  error
}

// Report summarizes one reconciliation run
type Report struct {
	Merged    []string
	Skipped   []Skipped
	Conflicts []Conflict
	Failed    []Failure
}

// Clean reports whether every backup was either merged or skipped
func (r Report) Clean() bool {
	return len(r.Conflicts) == 0 && len(r.Failed) == 0
}

// Engine merges backup files against a configuration snapshot
type Engine struct {
	fs           afero.Fs
	merger       Merger
	snapshotRoot string
	suffix       string
}

// NewEngine creates an engine. snapshotRoot is the directory returned by
// Snapshot and suffix the backup suffix (DefaultBackupSuffix when empty).
func NewEngine(fsys afero.Fs, merger Merger, snapshotRoot, suffix string) *Engine {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return &Engine{fs: fsys, merger: merger, snapshotRoot: snapshotRoot, suffix: suffix}
}

// Reconcile processes every backup in order. It never stops early: each
// file ends up in exactly one of the report's lists.
func (e *Engine) Reconcile(ctx context.Context, backups []string) Report {
	logger := logging.GetLogger("reconcile")
	done := logging.LogOperationStart(logger, "reconcile")
	defer done()

	var report Report
	for _, backup := range backups {
		if err := ctx.Err(); err != nil {
			report.Failed = append(report.Failed, Failure{Path: e.livePath(backup), Err: err})
			continue
		}
		e.reconcileOne(ctx, backup, &report)
	}

	logger.Info().
		Int("merged", len(report.Merged)).
		Int("skipped", len(report.Skipped)).
		Int("conflicts", len(report.Conflicts)).
		Int("failed", len(report.Failed)).
		Msg("Configuration reconciled")
	return report
}

func (e *Engine) livePath(backup string) string {
	return strings.TrimSuffix(backup, e.suffix)
}

func (e *Engine) reconcileOne(ctx context.Context, backup string, report *Report) {
	logger := logging.GetLogger("reconcile")
	live := e.livePath(backup)
	base := filepath.Join(e.snapshotRoot, live)

	if ok, err := filesystem.Exists(e.fs, base); err != nil {
		report.Failed = append(report.Failed, Failure{Path: live, Err: err})
		return
	} else if !ok {
		logger.Debug().Str("file", live).Msg("No snapshot entry, leaving backup")
		report.Skipped = append(report.Skipped, Skipped{Path: backup, Reason: ReasonNoSnapshot})
		return
	}

	if ok, err := filesystem.Exists(e.fs, live); err != nil {
		report.Failed = append(report.Failed, Failure{Path: live, Err: err})
		return
	} else if !ok {
		logger.Debug().Str("file", live).Msg("Live file missing, leaving backup")
		report.Skipped = append(report.Skipped, Skipped{Path: backup, Reason: ReasonNoLiveFile})
		return
	}

	res, err := e.merger.Merge(ctx, backup, base, live)
	if err != nil {
		report.Failed = append(report.Failed, Failure{Path: live, Err: err})
		return
	}

	if res.Conflict {
		diff := e.preview(backup, live)
		logger.Warn().Str("file", live).Msg("Merge conflict, keeping installed version")
		logger.Debug().Str("file", live).Msg("Conflict preview:\n" + diff)
		report.Conflicts = append(report.Conflicts, Conflict{Path: live, Backup: backup, Diff: diff})
		return
	}

	if err := filesystem.ReplaceContents(e.fs, live, res.Content); err != nil {
		report.Failed = append(report.Failed, Failure{Path: live, Err: err})
		return
	}
	if err := e.fs.Remove(backup); err != nil {
		report.Failed = append(report.Failed, Failure{
			Path: live,
			Err:  errors.Wrapf(err, errors.ErrFileWrite, "merged but could not remove %s", backup),
		})
		return
	}

	logger.Debug().Str("file", live).Msg("Merged local changes")
	report.Merged = append(report.Merged, live)
}

// preview renders a unified diff from the local version to the installed
// one. Unreadable files yield an empty preview.
func (e *Engine) preview(backup, live string) string {
	ours, err := afero.ReadFile(e.fs, backup)
	if err != nil {
		return ""
	}
	theirs, err := afero.ReadFile(e.fs, live)
	if err != nil {
		return ""
	}
	return udiff.Unified(backup, live, string(ours), string(theirs))
}
