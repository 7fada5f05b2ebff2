// Package selector decides which pkgbase packages replace the running base
// system.
//
// The repository's full package list is partitioned into categories by an
// ordered rule table, checked against the layout pkgbasify expects, and then
// reduced to the install set using the host's inventory: the generic kernel
// and the whole base are always installed, every optional category only when
// the matching subsystem is present today.
package selector
