package release

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
)

// MinimumMajor is the oldest major version with published pkgbase repositories
const MinimumMajor = 14

// Branch is the release branch of a FreeBSD version
type Branch int

const (
	BranchOther Branch = iota
	BranchRelease
	BranchCurrent
	BranchStable
)

// String returns the branch as printed by freebsd-version
func (b Branch) String() string {
	switch b {
	case BranchRelease:
		return "RELEASE"
	case BranchCurrent:
		return "CURRENT"
	case BranchStable:
		return "STABLE"
	default:
		return "OTHER"
	}
}

func parseBranch(s string) Branch {
	switch s {
	case "RELEASE":
		return BranchRelease
	case "CURRENT":
		return BranchCurrent
	case "STABLE":
		return BranchStable
	default:
		return BranchOther
	}
}

// VersionDescriptor is a parsed host version
type VersionDescriptor struct {
	Major  int
	Minor  int
	Branch Branch
}

// String renders the descriptor as MAJOR.MINOR-BRANCH
func (v VersionDescriptor) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "-" + v.Branch.String()
}

// Rolling reports whether the branch follows the latest package set
func (v VersionDescriptor) Rolling() bool {
	return v.Branch == BranchCurrent || v.Branch == BranchStable
}

// MAJOR.MINOR-BRANCH, then an optional suffix such as -p6
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)-([A-Z0-9]+)(?:-.+)?$`)

// Parse parses the output of freebsd-version. Only RELEASE, CURRENT and
// STABLE branches of major version 14 or newer are accepted; anything else
// is an UNSUPPORTED_VERSION error.
func Parse(raw string) (VersionDescriptor, error) {
	s := strings.TrimSpace(raw)
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return VersionDescriptor{}, errors.Newf(errors.ErrUnsupportedVersion,
			"unrecognized version string %q", s)
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return VersionDescriptor{}, errors.Wrapf(err, errors.ErrUnsupportedVersion,
			"invalid major version in %q", s)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return VersionDescriptor{}, errors.Wrapf(err, errors.ErrUnsupportedVersion,
			"invalid minor version in %q", s)
	}

	v := VersionDescriptor{Major: major, Minor: minor, Branch: parseBranch(m[3])}
	if v.Major < MinimumMajor {
		return VersionDescriptor{}, errors.Newf(errors.ErrUnsupportedVersion,
			"FreeBSD %s is not supported, pkgbase requires %d.0 or newer", s, MinimumMajor).
			WithDetail("major", v.Major)
	}
	if v.Branch == BranchOther {
		return VersionDescriptor{}, errors.Newf(errors.ErrUnsupportedVersion,
			"branch %s of %q has no pkgbase repository", m[3], s).
			WithDetail("branch", m[3])
	}
	return v, nil
}
