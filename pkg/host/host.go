package host

import (
	"context"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/arthur-debert/pkgbasify/pkg/errors"
)

// run invokes name and turns a non-zero exit into a COMMAND error
func run(ctx context.Context, r command.Runner, name string, args ...string) (command.Result, error) {
	res, err := r.Run(ctx, name, args...)
	if err != nil {
		return res, errors.Wrapf(err, errors.ErrCommand, "failed to run %s", name)
	}
	if !res.OK() {
		e := errors.Newf(errors.ErrCommand, "%s %s exited with status %d",
			name, strings.Join(args, " "), res.Status).
			WithDetail("status", res.Status)
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			e = e.WithDetail("stderr", msg)
		}
		return res, e
	}
	return res, nil
}
