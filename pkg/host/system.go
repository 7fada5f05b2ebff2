package host

import (
	"context"

	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/arthur-debert/pkgbasify/pkg/errors"
)

// System wraps the base utilities a conversion needs
type System struct {
	runner command.Runner
}

// NewSystem creates a System over runner
func NewSystem(runner command.Runner) *System {
	return &System{runner: runner}
}

// UserlandVersion returns the raw output of freebsd-version -u
func (s *System) UserlandVersion(ctx context.Context) (string, error) {
	res, err := run(ctx, s.runner, "freebsd-version", "-u")
	if err != nil {
		return "", err
	}
	lines := res.Lines()
	if len(lines) == 0 {
		return "", errors.New(errors.ErrCommand, "freebsd-version printed nothing")
	}
	return lines[0], nil
}

// OSVersion returns the raw output of uname -U
func (s *System) OSVersion(ctx context.Context) (string, error) {
	res, err := run(ctx, s.runner, "uname", "-U")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// ServiceRunning reports whether an rc.d service is running. A non-zero
// status from "service <name> status" means it is not.
func (s *System) ServiceRunning(ctx context.Context, name string) (bool, error) {
	res, err := s.runner.Run(ctx, "service", name, "status")
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrCommand, "failed to query service %s", name)
	}
	return res.OK(), nil
}

// RestartService restarts an rc.d service
func (s *System) RestartService(ctx context.Context, name string) error {
	_, err := run(ctx, s.runner, "service", name, "restart")
	return err
}

// RebuildPasswordDB regenerates the password databases from master.passwd
func (s *System) RebuildPasswordDB(ctx context.Context) error {
	_, err := run(ctx, s.runner, "pwd_mkdb", "-p", "/etc/master.passwd")
	return err
}

// RebuildLoginClassDB regenerates login.conf.db
func (s *System) RebuildLoginClassDB(ctx context.Context) error {
	_, err := run(ctx, s.runner, "cap_mkdb", "/etc/login.conf")
	return err
}

// BootEnvironmentsSupported reports whether bectl can manage boot
// environments on this host
func (s *System) BootEnvironmentsSupported(ctx context.Context) bool {
	res, err := s.runner.Run(ctx, "bectl", "check")
	return err == nil && res.OK()
}

// CreateBootEnvironment creates a boot environment named name
func (s *System) CreateBootEnvironment(ctx context.Context, name string) error {
	_, err := run(ctx, s.runner, "bectl", "create", name)
	return err
}

// DestroyBootEnvironment removes a boot environment
func (s *System) DestroyBootEnvironment(ctx context.Context, name string) error {
	_, err := run(ctx, s.runner, "bectl", "destroy", "-o", name)
	return err
}
