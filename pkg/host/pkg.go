package host

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/arthur-debert/pkgbasify/pkg/errors"
)

// PkgBinary is the package manager executable
const PkgBinary = "pkg"

// PkgTool drives pkg(8)
type PkgTool struct {
	runner command.Runner
}

// NewPkgTool creates a PkgTool over runner
func NewPkgTool(runner command.Runner) *PkgTool {
	return &PkgTool{runner: runner}
}

// Bootstrapped reports whether pkg itself is installed. "pkg -N" exits
// non-zero without attempting a bootstrap when it is not.
func (p *PkgTool) Bootstrapped(ctx context.Context) (bool, error) {
	res, err := p.runner.Run(ctx, PkgBinary, "-N")
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCommand, "failed to run pkg -N")
	}
	return res.OK(), nil
}

// Which reports whether path is owned by an installed package
func (p *PkgTool) Which(ctx context.Context, path string) (bool, error) {
	res, err := p.runner.Run(ctx, PkgBinary, "which", "--quiet", path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrCommand, "failed to run pkg which %s", path)
	}
	return res.OK() && strings.TrimSpace(res.Stdout) != "", nil
}

// ReposDirs returns the configured REPOS_DIR entries, each normalized to
// end in a slash.
func (p *PkgTool) ReposDirs(ctx context.Context) ([]string, error) {
	res, err := run(ctx, p.runner, PkgBinary, "config", "REPOS_DIR")
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, line := range res.Lines() {
		for _, d := range strings.Split(line, ",") {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			dirs = append(dirs, strings.TrimSuffix(filepath.Clean(d), "/")+"/")
		}
	}
	return dirs, nil
}

// Update refreshes the catalogue of one repository
func (p *PkgTool) Update(ctx context.Context, repo string) error {
	_, err := run(ctx, p.runner, PkgBinary, "update", "-r", repo)
	return err
}

// Candidates lists every package name the repository offers
func (p *PkgTool) Candidates(ctx context.Context, repo string) ([]string, error) {
	res, err := run(ctx, p.runner, PkgBinary, "rquery", "-r", repo, "%n")
	if err != nil {
		return nil, err
	}
	return res.Lines(), nil
}

// Annotations returns "tag value" lines for a package in the repository
func (p *PkgTool) Annotations(ctx context.Context, repo, pkg string) ([]string, error) {
	res, err := run(ctx, p.runner, PkgBinary, "rquery", "-r", repo, "%At %Av", pkg)
	if err != nil {
		return nil, err
	}
	return res.Lines(), nil
}

// Fetch downloads pkgs and their dependencies into the cache without
// installing them
func (p *PkgTool) Fetch(ctx context.Context, repo string, pkgs []string) error {
	args := append([]string{"fetch", "-d", "-y", "-r", repo}, pkgs...)
	_, err := run(ctx, p.runner, PkgBinary, args...)
	return err
}

// Install installs pkgs from repo. A non-empty dbDir points pkg at an
// alternate package database.
func (p *PkgTool) Install(ctx context.Context, repo string, pkgs []string, dbDir string) error {
	var args []string
	if dbDir != "" {
		args = append(args, "-o", "PKG_DBDIR="+dbDir)
	}
	args = append(args, "install", "-y", "-r", repo)
	args = append(args, pkgs...)
	_, err := run(ctx, p.runner, PkgBinary, args...)
	return err
}
