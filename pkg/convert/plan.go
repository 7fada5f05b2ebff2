package convert

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/inventory"
	"github.com/arthur-debert/pkgbasify/pkg/release"
	"github.com/arthur-debert/pkgbasify/pkg/selector"
)

// Plan is what a conversion would do on this host
type Plan struct {
	Version        release.VersionDescriptor
	Descriptor     release.Descriptor
	DescriptorPath string
	Inventory      inventory.Inventory
	Partition      selector.Partition
	Packages       []string
}

// Plan resolves the package set without changing the host. Candidates
// come from the configured repository, so it must already be known to pkg.
func (c *Converter) Plan(ctx context.Context) (*Plan, error) {
	plan, err := c.inspect(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.selectPackages(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// inspect runs the read-only checks shared by Plan and Run
func (c *Converter) inspect(ctx context.Context) (*Plan, error) {
	ok, err := c.pkg.Bootstrapped(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPreflight, "cannot run pkg")
	}
	if !ok {
		return nil, errors.New(errors.ErrPreflight, "pkg is not bootstrapped; run pkg bootstrap first")
	}

	converted, err := c.pkg.Which(ctx, ConvertedMarker)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPreflight, "cannot query package ownership")
	}
	if converted {
		return nil, errors.Newf(errors.ErrPreflight,
			"%s is already owned by a package; this host already uses base packages", ConvertedMarker)
	}

	raw, err := c.system.UserlandVersion(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPreflight, "cannot determine userland version")
	}
	v, err := release.Parse(raw)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("version", v.String()).Msg("Userland version")

	if err := c.checkReposDirs(ctx); err != nil {
		return nil, err
	}

	desc := release.NewDescriptor(release.DescriptorOptions{
		Name:          c.cfg.Repo.Name,
		URLPrefix:     c.cfg.Repo.URLPrefix,
		MirrorType:    c.cfg.Repo.MirrorType,
		SignatureType: c.cfg.Repo.SignatureType,
		KeysDir:       c.cfg.Repo.KeysDir,
	}, v)

	return &Plan{
		Version:        v,
		Descriptor:     desc,
		DescriptorPath: filepath.Join(c.cfg.Repo.ConfDir, desc.FileName()),
	}, nil
}

// checkReposDirs insists on the stock REPOS_DIR layout so the descriptor
// lands somewhere pkg reads and nothing else can shadow it.
func (c *Converter) checkReposDirs(ctx context.Context) error {
	dirs, err := c.pkg.ReposDirs(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrPreflight, "cannot read REPOS_DIR")
	}
	want := []string{SystemReposDir, strings.TrimSuffix(filepath.Clean(c.cfg.Repo.ConfDir), "/") + "/"}
	if len(dirs) != len(want) || dirs[0] != want[0] || dirs[1] != want[1] {
		return errors.Newf(errors.ErrPreflight,
			"unsupported REPOS_DIR %v; expected %v", dirs, want).
			WithDetail("repos_dir", dirs)
	}
	return nil
}

// selectPackages fills in the inventory, partition and install set
func (c *Converter) selectPackages(ctx context.Context, plan *Plan) error {
	candidates, err := c.pkg.Candidates(ctx, c.cfg.Repo.Name)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPreflight, "cannot list packages in %s", c.cfg.Repo.Name)
	}

	plan.Inventory = inventory.NewScanner(c.fs, c.cfg.Probes.Markers()).Scan()

	pkgs, partition, err := selector.Resolve(candidates, plan.Inventory)
	plan.Partition = partition
	if err != nil {
		return err
	}
	plan.Packages = pkgs
	c.logger.Info().Int("candidates", len(candidates)).Int("selected", len(pkgs)).Msg("Package set resolved")
	return nil
}
