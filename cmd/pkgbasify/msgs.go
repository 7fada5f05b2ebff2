package pkgbasify

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Convert a FreeBSD base system to packages"
	MsgPlanShort      = "Show what a conversion would install"
	MsgInventoryShort = "Show which optional base subsystems are installed"
	MsgVersionShort   = "Print version information"

	// Report messages
	MsgPlanHeader       = "Conversion plan"
	MsgInventoryHeader  = "Installed subsystems"
	MsgPackagesHeader   = "Packages (%d)"
	MsgDescriptorHeader = "Repository config %s"
	MsgVersionLine      = "Release: %s"
	MsgSubsystemLine    = "  %-13s %-4s %s\n"
	MsgMergeHeader      = "Configuration files"
	MsgMerged           = "  merged   %s\n"
	MsgSkipped          = "  skipped  %s (%s)\n"
	MsgConflict         = "  conflict %s\n"
	MsgFailed           = "  failed   %s\n"
	MsgBootEnvironment  = "Boot environment %s holds the pre-conversion system."
	MsgWorkDirKept      = "Snapshot kept for manual merging in %s"
	MsgErrorsHeader     = "%d step(s) failed after installation started"
	MsgErrorItem        = "  %s: %v\n"
	MsgSuccess          = "Conversion complete. Reboot to start the packaged kernel."

	// Error messages
	MsgErrConversionIncomplete = "conversion completed with %d error(s)"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default /usr/local/etc/pkgbasify.toml)"
	MsgFlagYes     = "Answer yes to every question"
	MsgFlagWorkDir = "Parent directory for the conversion's scratch space"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)
)
