package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pkgbasify/cmd/pkgbasify"
	"github.com/arthur-debert/pkgbasify/pkg/convert"
	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/ui/styles"
)

func main() {
	rootCmd := pkgbasify.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, styles.Render(styles.Error, fmt.Sprintf("Error: %v", err)))
		if errors.IsPreCommit(err) {
			fmt.Fprintln(os.Stderr, styles.Render(styles.Muted, "No changes were made to this system."))
		}
		os.Exit(convert.ExitCodeFor(err))
	}
}
