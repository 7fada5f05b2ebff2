package convert

import (
	"context"
	"fmt"

	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/arthur-debert/pkgbasify/pkg/config"
	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/host"
	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/arthur-debert/pkgbasify/pkg/session"
	"github.com/arthur-debert/pkgbasify/pkg/ui/confirm"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ConvertedMarker is a base system file; once a package owns it the host
// has already been converted.
const ConvertedMarker = "/usr/bin/uname"

// ReferencePackage carries the repository's FreeBSD_version annotation
const ReferencePackage = "FreeBSD-runtime"

// SystemReposDir is the directory pkg reads the stock repositories from
const SystemReposDir = "/etc/pkg/"

// Converter runs conversions against one host
type Converter struct {
	cfg     *config.Config
	fs      afero.Fs
	runner  command.Runner
	pkg     *host.PkgTool
	system  *host.System
	confirm confirm.Confirmer
	logger  zerolog.Logger
}

// New creates a Converter. Every external program is run through runner
// and every question goes to confirmer.
func New(cfg *config.Config, fsys afero.Fs, runner command.Runner, confirmer confirm.Confirmer) *Converter {
	return &Converter{
		cfg:     cfg,
		fs:      fsys,
		runner:  runner,
		pkg:     host.NewPkgTool(runner),
		system:  host.NewSystem(runner),
		confirm: confirmer,
		logger:  logging.GetLogger("convert"),
	}
}

// Run performs a full conversion.
//
// A returned error means the run stopped before the point of no return and
// the host was left as it was found. Once packages start installing, Run
// always returns a Result; failures from then on are in Result.Errors.
func (c *Converter) Run(ctx context.Context) (*Result, error) {
	sess, err := session.New(c.fs, c.cfg.Paths.WorkDirParent)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			c.logger.Warn().Err(err).Str("workDir", sess.WorkDir()).Msg("Failed to remove work directory")
		}
	}()

	prep, err := c.setup(ctx, sess)
	if err != nil {
		if rbErr := sess.Rollback(); rbErr != nil {
			c.logger.Error().Err(rbErr).Msg("Rollback incomplete")
		}
		return nil, err
	}

	return c.commit(context.WithoutCancel(ctx), sess, prep), nil
}

// ask wraps a confirmation; declining is reported as false
func (c *Converter) ask(format string, args ...interface{}) (bool, error) {
	prompt := fmt.Sprintf(format, args...)
	ok, err := c.confirm.Confirm(prompt)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrUserAbort) {
			return false, err
		}
		return false, errors.Wrap(err, errors.ErrUserAbort, "no answer to confirmation")
	}
	c.logger.Debug().Str("prompt", prompt).Bool("answer", ok).Msg("Confirmation")
	return ok, nil
}

// retry runs fn until it succeeds, the attempts run out or the user stops
// asking for another try.
func (c *Converter) retry(ctx context.Context, what string, fn func(context.Context) error) error {
	attempts := c.cfg.Install.FetchAttempts
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		c.logger.Warn().Err(err).Int("attempt", attempt).Msg(what + " failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Wrapf(ctxErr, errors.ErrUserAbort, "%s interrupted", what)
		}
		if attempt >= attempts {
			return errors.Wrapf(err, errors.ErrPreflight, "%s failed after %d attempts", what, attempt)
		}
		again, askErr := c.ask("%s failed: %v. Try again?", what, err)
		if askErr != nil {
			return askErr
		}
		if !again {
			return errors.Wrapf(err, errors.ErrUserAbort, "%s failed", what)
		}
	}
}
