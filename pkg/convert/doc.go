// Package convert turns a FreeBSD host installed from distribution sets
// into one managed by base system packages.
//
// A conversion runs in two phases. Setup validates the host, writes the
// repository configuration, resolves and downloads the package set and
// snapshots the configuration database; every side effect it has is
// registered with the session and undone if a later setup step fails.
// Commit starts with the package install, the point of no return. Every
// step after it runs exactly once whatever happened before, and failures
// are collected into the Result instead of stopping the run.
//
//	Setup:  pkg -N, pkg which, freebsd-version -u, REPOS_DIR check,
//	        repository config, pkg update, FreeBSD_version check,
//	        candidates, confirmation, pkg fetch, boot environment, snapshot
//	Commit: pkg install, merge .pkgsave files, restart services,
//	        pwd_mkdb, cap_mkdb, stray file removal
package convert
