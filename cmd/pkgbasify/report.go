package pkgbasify

import (
	"fmt"
	"io"

	"github.com/arthur-debert/pkgbasify/pkg/convert"
	"github.com/arthur-debert/pkgbasify/pkg/inventory"
	"github.com/arthur-debert/pkgbasify/pkg/ui/styles"
)

func heading(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(w, styles.Render(styles.Header, fmt.Sprintf(format, args...)))
}

func renderPlan(w io.Writer, plan *convert.Plan) {
	heading(w, MsgPlanHeader)
	_, _ = fmt.Fprintf(w, MsgVersionLine+"\n", plan.Version)

	heading(w, MsgDescriptorHeader, styles.Render(styles.Path, plan.DescriptorPath))
	_, _ = fmt.Fprint(w, plan.Descriptor.Render())

	heading(w, MsgInventoryHeader)
	for _, s := range inventory.Subsystems {
		_, _ = fmt.Fprintf(w, MsgSubsystemLine, s, yesNo(plan.Inventory.Has(s)), "")
	}

	heading(w, MsgPackagesHeader, len(plan.Packages))
	for _, p := range plan.Packages {
		_, _ = fmt.Fprintln(w, styles.Render(styles.Package, p))
	}
}

func renderInventory(w io.Writer, scanner *inventory.Scanner, inv inventory.Inventory) {
	heading(w, MsgInventoryHeader)
	for _, s := range inventory.Subsystems {
		_, _ = fmt.Fprintf(w, MsgSubsystemLine, s, yesNo(inv.Has(s)),
			styles.Render(styles.Muted, scanner.Marker(s)))
	}
}

func renderResult(w io.Writer, result *convert.Result) {
	report := result.Merge
	if len(report.Merged)+len(report.Skipped)+len(report.Conflicts)+len(report.Failed) > 0 {
		heading(w, MsgMergeHeader)
		for _, p := range report.Merged {
			_, _ = fmt.Fprintf(w, MsgMerged, styles.Render(styles.Path, p))
		}
		for _, s := range report.Skipped {
			_, _ = fmt.Fprintf(w, MsgSkipped, styles.Render(styles.Path, s.Path), s.Reason)
		}
		for _, c := range report.Conflicts {
			_, _ = fmt.Fprintf(w, MsgConflict, styles.Render(styles.Warning, c.Path))
		}
		for _, f := range report.Failed {
			_, _ = fmt.Fprintf(w, MsgFailed, styles.Render(styles.Error, f.Path))
		}
	}

	if result.WorkDir != "" {
		_, _ = fmt.Fprintln(w, styles.Render(styles.Warning, fmt.Sprintf(MsgWorkDirKept, result.WorkDir)))
	}
	if result.BootEnvironment != "" {
		_, _ = fmt.Fprintln(w, styles.Render(styles.Muted, fmt.Sprintf(MsgBootEnvironment, result.BootEnvironment)))
	}

	if len(result.Errors) > 0 {
		heading(w, MsgErrorsHeader, len(result.Errors))
		for _, e := range result.Errors {
			_, _ = fmt.Fprintf(w, MsgErrorItem, e.Op, e.Err)
		}
		return
	}
	_, _ = fmt.Fprintln(w, styles.Render(styles.Success, MsgSuccess))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
