package release

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
)

// OSVersionAnnotation is the package annotation carrying __FreeBSD_version
const OSVersionAnnotation = "FreeBSD_version"

// Compat describes how the repository relates to the running system
type Compat int

const (
	// CompatSame means the repository matches the host
	CompatSame Compat = iota
	// CompatDowngrade means installing would move the host backwards
	CompatDowngrade
	// CompatBehind means the host is older than the repository
	CompatBehind
)

// String returns a short label for the comparison
func (c Compat) String() string {
	switch c {
	case CompatDowngrade:
		return "downgrade"
	case CompatBehind:
		return "behind"
	default:
		return "same"
	}
}

// NeedsConfirmation reports whether proceeding requires explicit consent
func (c Compat) NeedsConfirmation() bool {
	return c != CompatSame
}

// CompareOSVersion compares the host's OS version with the repository's
func CompareOSVersion(local, remote int) Compat {
	switch {
	case remote < local:
		return CompatDowngrade
	case remote > local:
		return CompatBehind
	default:
		return CompatSame
	}
}

// ParseOSVersion parses a __FreeBSD_version value such as 1401000
func ParseOSVersion(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.Newf(errors.ErrPreflight, "invalid OS version %q", s)
	}
	return n, nil
}

// RemoteOSVersion extracts the OS version annotation from lines in the
// "tag value" form printed by pkg rquery '%At %Av'.
func RemoteOSVersion(annotations []string) (int, error) {
	for _, line := range annotations {
		tag, value, ok := strings.Cut(strings.TrimSpace(line), " ")
		if !ok || tag != OSVersionAnnotation {
			continue
		}
		return ParseOSVersion(value)
	}
	return 0, errors.Newf(errors.ErrPreflight,
		"repository does not report a %s annotation", OSVersionAnnotation)
}
