package convert

import (
	"context"
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/arthur-debert/pkgbasify/pkg/reconcile"
	"github.com/arthur-debert/pkgbasify/pkg/session"
)

// commit runs every post-install step exactly once. ctx must not be
// cancellable: there is no stopping half way from here.
func (c *Converter) commit(ctx context.Context, sess *session.Session, prep *preparation) *Result {
	done := logging.LogOperationStart(c.logger, "commit")
	defer done()

	result := &Result{Plan: *prep.Plan, BootEnvironment: prep.bootEnvironment}

	if err := sess.Commit(); err != nil {
		sess.Record("commit", err)
	}

	sess.Record("install packages", commitErr(
		c.pkg.Install(ctx, c.cfg.Repo.Name, prep.Packages, c.cfg.Install.DBDir), "package installation failed"))

	result.Merge = c.reconcile(ctx, sess, prep.snapshotRoot)

	for _, name := range c.cfg.Services.Restart {
		sess.Record("restart "+name, c.restartIfRunning(ctx, name))
	}

	sess.Record("rebuild password database", commitErr(c.system.RebuildPasswordDB(ctx), "pwd_mkdb failed"))
	sess.Record("rebuild login class database", commitErr(c.system.RebuildLoginClassDB(ctx), "cap_mkdb failed"))

	for _, path := range c.cfg.Cleanup.StrayFiles {
		sess.Record("remove "+path, c.removeStray(path))
	}

	if err := sess.Finish(); err != nil {
		sess.Record("finish", err)
	}

	if len(result.Merge.Conflicts) > 0 && prep.snapshotRoot != "" {
		sess.Keep()
		result.WorkDir = sess.WorkDir()
	}
	result.Errors = sess.Errors()

	c.logger.Info().Int("errors", len(result.Errors)).Msg("Conversion finished")
	return result
}

// reconcile merges local edits back and records every unmerged file
func (c *Converter) reconcile(ctx context.Context, sess *session.Session, snapshotRoot string) reconcile.Report {
	suffix := c.cfg.Paths.BackupSuffix
	skip := append(append([]string(nil), c.cfg.Paths.SkipDirs...), sess.WorkDir())

	backups, err := reconcile.FindBackups(c.fs, c.cfg.Paths.SearchRoots, suffix, skip)
	if err != nil {
		sess.Record("find backups", errors.Wrap(err, errors.ErrCommit, "cannot search for backups"))
		return reconcile.Report{}
	}

	var report reconcile.Report
	if snapshotRoot == "" {
		for _, b := range backups {
			report.Skipped = append(report.Skipped, reconcile.Skipped{Path: b, Reason: reconcile.ReasonNoSnapshot})
		}
		return report
	}

	merger := reconcile.NewDiff3Merger(c.runner, c.cfg.Merge.Tool)
	report = reconcile.NewEngine(c.fs, merger, snapshotRoot, suffix).Reconcile(ctx, backups)

	for _, cf := range report.Conflicts {
		sess.Record("merge "+cf.Path, errors.Newf(errors.ErrMergeConflict,
			"local changes conflict with the new version; yours are in %s", cf.Backup))
	}
	for _, f := range report.Failed {
		sess.Record("merge "+f.Path, errors.Wrap(f.Err, errors.ErrCommit, "merge failed"))
	}
	return report
}

func (c *Converter) restartIfRunning(ctx context.Context, name string) error {
	running, err := c.system.ServiceRunning(ctx, name)
	if err != nil {
		return errors.Wrap(err, errors.ErrCommit, "cannot query service")
	}
	if !running {
		c.logger.Debug().Str("service", name).Msg("Service not running, not restarting")
		return nil
	}
	if err := c.system.RestartService(ctx, name); err != nil {
		return errors.Wrap(err, errors.ErrCommit, "restart failed")
	}
	return nil
}

func (c *Converter) removeStray(path string) error {
	err := c.fs.Remove(path)
	if err == nil || stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errors.Wrap(err, errors.ErrCommit, "cannot remove")
}

// commitErr marks a post-commit failure; nil stays nil
func commitErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, errors.ErrCommit, msg)
}
