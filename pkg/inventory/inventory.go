// Package inventory answers which optional base system components are
// installed on the host, by probing marker paths on the filesystem.
package inventory

import (
	"io"

	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/spf13/afero"
)

// Subsystem is an optional part of the base system
type Subsystem int

const (
	KernelDebug Subsystem = iota
	BaseDebug
	Lib32
	Lib32Debug
	Src
	Tests
)

// Subsystems lists every tracked subsystem in a stable order
var Subsystems = []Subsystem{KernelDebug, BaseDebug, Lib32, Lib32Debug, Src, Tests}

// String returns the subsystem's name
func (s Subsystem) String() string {
	switch s {
	case KernelDebug:
		return "kernel-debug"
	case BaseDebug:
		return "base-debug"
	case Lib32:
		return "lib32"
	case Lib32Debug:
		return "lib32-debug"
	case Src:
		return "src"
	case Tests:
		return "tests"
	default:
		return "unknown"
	}
}

// DefaultMarkers are the paths whose presence shows a subsystem is installed
var DefaultMarkers = map[Subsystem]string{
	KernelDebug: "/usr/lib/debug/boot/kernel",
	BaseDebug:   "/usr/lib/debug/lib/libc.so.7.debug",
	Lib32:       "/usr/lib32/libc.so.7",
	Lib32Debug:  "/usr/lib/debug/usr/lib32/libc.so.7.debug",
	Src:         "/usr/src",
	Tests:       "/usr/tests",
}

// Populated reports whether path is a regular file, or a directory holding
// at least one entry. Missing paths, empty directories and anything that
// cannot be read are false.
func Populated(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	if info.Mode().IsRegular() {
		return true
	}
	if !info.IsDir() {
		return false
	}

	dir, err := fsys.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = dir.Close() }()

	names, err := dir.Readdirnames(1)
	if err != nil && err != io.EOF {
		return false
	}
	return len(names) > 0
}

// Inventory is the result of one scan
type Inventory map[Subsystem]bool

// Has reports whether s was found
func (inv Inventory) Has(s Subsystem) bool {
	return inv[s]
}

// Scanner probes the filesystem for installed subsystems
type Scanner struct {
	fs      afero.Fs
	markers map[Subsystem]string
}

// NewScanner creates a scanner. Markers missing from overrides fall back to
// DefaultMarkers.
func NewScanner(fsys afero.Fs, overrides map[Subsystem]string) *Scanner {
	markers := make(map[Subsystem]string, len(DefaultMarkers))
	for s, p := range DefaultMarkers {
		markers[s] = p
	}
	for s, p := range overrides {
		if p != "" {
			markers[s] = p
		}
	}
	return &Scanner{fs: fsys, markers: markers}
}

// Marker returns the path probed for s
func (sc *Scanner) Marker(s Subsystem) string {
	return sc.markers[s]
}

// Scan probes every subsystem against the current state of the disk
func (sc *Scanner) Scan() Inventory {
	logger := logging.GetLogger("inventory")
	inv := make(Inventory, len(Subsystems))
	for _, s := range Subsystems {
		inv[s] = Populated(sc.fs, sc.markers[s])
		logger.Debug().
			Str("subsystem", s.String()).
			Str("marker", sc.markers[s]).
			Bool("present", inv[s]).
			Msg("Probed subsystem")
	}
	return inv
}
