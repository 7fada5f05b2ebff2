// Package reconcile carries local configuration edits across the switch to
// packages.
//
// Before anything is installed, the etcupdate database (the pristine copy
// of every configuration file the running release shipped) is snapshotted
// into the session's work directory. Installing packages then overwrites
// live files, leaving the previous, possibly locally edited, version next to
// each one with a backup suffix. The engine three-way merges every such
// backup against its snapshot entry and the newly installed file:
//
//	ours   = /etc/rc.conf.pkgsave   (what the admin had)
//	base   = <snapshot>/etc/rc.conf (what the release shipped)
//	theirs = /etc/rc.conf           (what the package installed)
//
// A clean merge is written to a temporary file carrying the live file's
// mode and ownership, renamed over the live file, and consumes the backup. A conflict leaves both files
// exactly as the installer left them and is reported. Backups without a
// snapshot entry are never merged and never removed.
package reconcile
