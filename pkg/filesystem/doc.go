// Package filesystem provides the filesystem implementations and the few
// multi-step file operations pkgbasify performs on them.
//
// Everything is expressed over afero.Fs so the same code runs against the
// host filesystem and an in-memory filesystem in tests.
package filesystem
