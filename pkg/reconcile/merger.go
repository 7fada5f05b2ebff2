package reconcile

import (
	"context"
	"fmt"

	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/arthur-debert/pkgbasify/pkg/errors"
)

// DefaultMergeTool is the three-way merge program
const DefaultMergeTool = "diff3"

// MergeResult is the outcome of one three-way merge
type MergeResult struct {
	Content  []byte
	Conflict bool
}

// Merger performs a three-way merge of files on disk
type Merger interface {
	Merge(ctx context.Context, ours, base, theirs string) (MergeResult, error)
}

// Diff3Merger merges with diff3(1) in merge mode
type Diff3Merger struct {
	runner command.Runner
	tool   string
}

// NewDiff3Merger creates a merger running tool (diff3 when empty)
func NewDiff3Merger(runner command.Runner, tool string) *Diff3Merger {
	if tool == "" {
		tool = DefaultMergeTool
	}
	return &Diff3Merger{runner: runner, tool: tool}
}

// Merge runs "diff3 -m ours base theirs". Exit status 0 is a clean merge
// whose output is the merged file, 1 means conflicts, anything else is
// trouble.
func (m *Diff3Merger) Merge(ctx context.Context, ours, base, theirs string) (MergeResult, error) {
	res, err := m.runner.Run(ctx, m.tool, "-m", ours, base, theirs)
	if err != nil {
		return MergeResult{}, errors.Wrapf(err, errors.ErrCommand, "failed to run %s", m.tool)
	}
	switch res.Status {
	case 0:
		return MergeResult{Content: []byte(res.Stdout)}, nil
	case 1:
		return MergeResult{Conflict: true}, nil
	default:
		return MergeResult{}, errors.Newf(errors.ErrCommand, "%s exited with status %d: %s",
			m.tool, res.Status, res.Stderr).WithDetail("file", theirs)
	}
}

var _ Merger = (*Diff3Merger)(nil)

// String names the merger for logs
func (m *Diff3Merger) String() string {
	return fmt.Sprintf("%s -m", m.tool)
}
