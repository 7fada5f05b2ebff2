package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/filesystem"
	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/arthur-debert/pkgbasify/pkg/reconcile"
	"github.com/arthur-debert/pkgbasify/pkg/release"
	"github.com/arthur-debert/pkgbasify/pkg/session"
	"github.com/spf13/afero"
)

// preparation is everything Setup produced that Commit consumes
type preparation struct {
	*Plan
	bootEnvironment string
	snapshotRoot    string
}

// setup runs every reversible step. Side effects are registered with sess
// so the caller can roll them back on error.
func (c *Converter) setup(ctx context.Context, sess *session.Session) (*preparation, error) {
	done := logging.LogOperationStart(c.logger, "setup")
	defer done()

	plan, err := c.inspect(ctx)
	if err != nil {
		return nil, err
	}
	prep := &preparation{Plan: plan}

	steps := []struct {
		name string
		fn   func(context.Context, *session.Session, *preparation) error
	}{
		{"write repository config", c.writeDescriptor},
		{"update catalogue", c.updateCatalogue},
		{"check OS version", c.checkCompat},
		{"select packages", func(ctx context.Context, _ *session.Session, p *preparation) error {
			return c.selectPackages(ctx, p.Plan)
		}},
		{"confirm packages", c.confirmPackages},
		{"fetch packages", c.fetchPackages},
		{"create boot environment", c.createBootEnvironment},
		{"snapshot configuration", c.snapshot},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrUserAbort, "interrupted before %s", step.name)
		}
		c.logger.Debug().Str("step", step.name).Msg("Setup step")
		if err := step.fn(ctx, sess, prep); err != nil {
			return nil, err
		}
	}
	return prep, nil
}

func (c *Converter) writeDescriptor(_ context.Context, sess *session.Session, prep *preparation) error {
	path := prep.DescriptorPath
	content := prep.Descriptor.Render()

	existed, err := filesystem.Exists(c.fs, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPreflight, "cannot check %s", path)
	}

	var previous []byte
	if existed {
		previous, err = afero.ReadFile(c.fs, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrPreflight, "cannot read %s", path)
		}
		if string(previous) == content {
			c.logger.Info().Str("path", path).Msg("Repository config already up to date")
			return nil
		}
		ok, err := c.ask("Repository config %s already exists. Overwrite it?", path)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Newf(errors.ErrPreflight, "%s exists and was not overwritten", path)
		}
	}

	dir := filepath.Dir(path)
	created, err := highestMissing(c.fs, dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPreflight, "cannot check %s", dir)
	}
	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dir)
	}
	if err := afero.WriteFile(c.fs, path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}

	sess.OnRollback("restore "+path, func() error {
		switch {
		case existed:
			return afero.WriteFile(c.fs, path, previous, 0644)
		case created != "":
			return c.fs.RemoveAll(created)
		default:
			return c.fs.Remove(path)
		}
	})
	c.logger.Info().Str("path", path).Str("url", prep.Descriptor.URL).Msg("Repository config written")
	return nil
}

// highestMissing returns the outermost ancestor of dir (or dir itself)
// that does not exist yet, or "" when dir exists.
func highestMissing(fsys afero.Fs, dir string) (string, error) {
	missing := ""
	for p := filepath.Clean(dir); ; p = filepath.Dir(p) {
		ok, err := filesystem.Exists(fsys, p)
		if err != nil {
			return "", err
		}
		if ok {
			return missing, nil
		}
		missing = p
		if parent := filepath.Dir(p); parent == p {
			return missing, nil
		}
	}
}

func (c *Converter) updateCatalogue(ctx context.Context, _ *session.Session, _ *preparation) error {
	return c.retry(ctx, "pkg update", func(ctx context.Context) error {
		return c.pkg.Update(ctx, c.cfg.Repo.Name)
	})
}

func (c *Converter) checkCompat(ctx context.Context, _ *session.Session, _ *preparation) error {
	raw, err := c.system.OSVersion(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrPreflight, "cannot determine OS version")
	}
	local, err := release.ParseOSVersion(raw)
	if err != nil {
		return err
	}
	annotations, err := c.pkg.Annotations(ctx, c.cfg.Repo.Name, ReferencePackage)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPreflight, "cannot query %s", ReferencePackage)
	}
	remote, err := release.RemoteOSVersion(annotations)
	if err != nil {
		return err
	}

	compat := release.CompareOSVersion(local, remote)
	c.logger.Info().Int("local", local).Int("remote", remote).Str("compat", compat.String()).Msg("OS version check")
	if !compat.NeedsConfirmation() {
		return nil
	}

	var prompt string
	if compat == release.CompatDowngrade {
		prompt = fmt.Sprintf("The repository (%d) is older than this host (%d); converting will downgrade the system. Continue?", remote, local)
	} else {
		prompt = fmt.Sprintf("This host (%d) is behind the repository (%d); converting will upgrade the system. Continue?", local, remote)
	}
	ok, err := c.ask("%s", prompt)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf(errors.ErrUserAbort, "declined %s from %d to %d", compat, local, remote)
	}
	return nil
}

func (c *Converter) confirmPackages(_ context.Context, _ *session.Session, prep *preparation) error {
	ok, err := c.ask("Install %d packages from %s?\n  %s\n",
		len(prep.Packages), c.cfg.Repo.Name, strings.Join(prep.Packages, "\n  "))
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrUserAbort, "package installation declined")
	}
	return nil
}

func (c *Converter) fetchPackages(ctx context.Context, _ *session.Session, prep *preparation) error {
	return c.retry(ctx, "pkg fetch", func(ctx context.Context) error {
		return c.pkg.Fetch(ctx, c.cfg.Repo.Name, prep.Packages)
	})
}

func (c *Converter) createBootEnvironment(ctx context.Context, sess *session.Session, prep *preparation) error {
	if !c.cfg.BootEnvironment.Create {
		return nil
	}
	if !c.system.BootEnvironmentsSupported(ctx) {
		c.logger.Warn().Msg("Boot environments not supported here, continuing without one")
		return nil
	}

	name := c.cfg.BootEnvironment.Name
	if err := c.system.CreateBootEnvironment(ctx, name); err != nil {
		return errors.Wrapf(err, errors.ErrPreflight, "cannot create boot environment %s", name)
	}
	sess.OnRollback("destroy boot environment "+name, func() error {
		return c.system.DestroyBootEnvironment(context.WithoutCancel(ctx), name)
	})
	prep.bootEnvironment = name
	c.logger.Info().Str("name", name).Msg("Boot environment created")
	return nil
}

func (c *Converter) snapshot(_ context.Context, sess *session.Session, prep *preparation) error {
	root, err := reconcile.Snapshot(c.fs, c.cfg.Paths.EtcupdateDB, sess.WorkDir())
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			c.logger.Warn().Str("path", c.cfg.Paths.EtcupdateDB).
				Msg("No etcupdate database; local configuration changes will not be merged")
			return nil
		}
		return errors.Wrap(err, errors.ErrPreflight, "cannot snapshot configuration database")
	}
	prep.snapshotRoot = root
	return nil
}
