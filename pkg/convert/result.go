package convert

import (
	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/reconcile"
	"github.com/arthur-debert/pkgbasify/pkg/session"
)

// Process exit statuses
const (
	ExitOK         = 0
	ExitPreCommit  = 1
	ExitPostCommit = 2
)

// Result describes a conversion that went past the point of no return
type Result struct {
	Plan
	BootEnvironment string
	Merge           reconcile.Report
	Errors          []session.StepError
	// WorkDir is set when the work directory was kept for manual merging
	WorkDir string
}

// Succeeded reports whether every post-commit step worked
func (r *Result) Succeeded() bool {
	return len(r.Errors) == 0
}

// ExitCode maps the result to a process exit status
func (r *Result) ExitCode() int {
	if r.Succeeded() {
		return ExitOK
	}
	return ExitPostCommit
}

// ExitCodeFor maps an error returned before commit to an exit status.
// Post-commit problems never surface as errors; see Result.ExitCode.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsPreCommit(err):
		return ExitPreCommit
	default:
		return ExitPostCommit
	}
}
