// Package session holds the state of one conversion run: its phase, its
// private scratch directory and the failures collected after the point of
// no return.
package session

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Phase is a step of the conversion state machine
type Phase int

const (
	// Setup is fully reversible
	Setup Phase = iota
	// Committed starts right before the installer runs
	Committed
	// Done means every post-commit step was attempted once
	Done
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Committed:
		return "committed"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// StepError is a post-commit failure
type StepError struct {
	Op  string
	Err error
}

// Error implements error
func (e StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e StepError) Unwrap() error {
	return e.Err
}

type undo struct {
	name string
	fn   func() error
}

// Session is owned by a single conversion for its whole lifetime
type Session struct {
	fs      afero.Fs
	workDir string
	phase   Phase
	errs    []StepError
	undos   []undo
	keep    bool
	logger  zerolog.Logger
}

// New creates a session with a freshly created, exclusively owned work
// directory under parent (the system temp directory when empty).
func New(fsys afero.Fs, parent string) (*Session, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	if err := fsys.MkdirAll(parent, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPreflight, "failed to create %s", parent)
	}
	dir, err := afero.TempDir(fsys, parent, "pkgbasify-")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPreflight, "failed to create work directory")
	}
	if err := fsys.Chmod(dir, 0700); err != nil {
		_ = fsys.RemoveAll(dir)
		return nil, errors.Wrap(err, errors.ErrPreflight, "failed to restrict work directory")
	}

	s := &Session{
		fs:      fsys,
		workDir: dir,
		phase:   Setup,
		logger:  logging.GetLogger("session"),
	}
	s.logger.Debug().Str("workDir", dir).Msg("Session created")
	return s, nil
}

// WorkDir is the session's scratch directory
func (s *Session) WorkDir() string {
	return s.workDir
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	return s.phase
}

// OnRollback registers an action undoing a Setup side effect. Actions run
// in reverse registration order.
func (s *Session) OnRollback(name string, fn func() error) {
	s.undos = append(s.undos, undo{name: name, fn: fn})
}

// Rollback undoes every registered Setup side effect. It is only legal
// before Commit; afterwards there is nothing to roll back to.
func (s *Session) Rollback() error {
	if s.phase != Setup {
		return errors.Newf(errors.ErrInternal, "cannot roll back in phase %s", s.phase)
	}
	var failed []string
	for i := len(s.undos) - 1; i >= 0; i-- {
		u := s.undos[i]
		if err := u.fn(); err != nil {
			s.logger.Error().Err(err).Str("step", u.name).Msg("Rollback step failed")
			failed = append(failed, u.name)
			continue
		}
		s.logger.Debug().Str("step", u.name).Msg("Rolled back")
	}
	s.undos = nil
	if len(failed) > 0 {
		return errors.Newf(errors.ErrInternal, "rollback incomplete: %v", failed)
	}
	return nil
}

// Commit crosses the point of no return
func (s *Session) Commit() error {
	if s.phase != Setup {
		return errors.Newf(errors.ErrInternal, "cannot commit in phase %s", s.phase)
	}
	s.phase = Committed
	s.undos = nil
	s.logger.Info().Msg("Committed: changes from here on are not reversible")
	return nil
}

// Record stores the outcome of a post-commit step; nil errors are ignored.
// Recording never stops the caller from running the next step.
func (s *Session) Record(op string, err error) {
	if err == nil {
		return
	}
	if s.phase != Committed {
		s.logger.Warn().Str("op", op).Str("phase", s.phase.String()).Msg("Recording error outside committed phase")
	}
	s.errs = append(s.errs, StepError{Op: op, Err: err})
	s.logger.Error().Err(err).Str("op", op).Msg("Post-commit step failed")
}

// Errors returns the recorded post-commit failures in order
func (s *Session) Errors() []StepError {
	return s.errs
}

// Finish marks every post-commit step as attempted
func (s *Session) Finish() error {
	if s.phase != Committed {
		return errors.Newf(errors.ErrInternal, "cannot finish in phase %s", s.phase)
	}
	s.phase = Done
	return nil
}

// Keep preserves the work directory when the session is closed
func (s *Session) Keep() {
	s.keep = true
}

// Kept reports whether Close will leave the work directory in place
func (s *Session) Kept() bool {
	return s.keep
}

// Close discards the work directory unless Keep was called
func (s *Session) Close() error {
	if s.keep {
		s.logger.Info().Str("workDir", s.workDir).Msg("Keeping work directory")
		return nil
	}
	return s.fs.RemoveAll(s.workDir)
}
