// Package release turns the host's version string into the pkgbase
// repository that matches it, and compares the host's OS version with the
// one the repository was built for.
//
// Resolution is a pure function of its input: no filesystem access, no
// external commands.
package release
