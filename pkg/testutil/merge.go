package testutil

import (
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/spf13/afero"
)

// Diff3Handler stands in for "diff3 -m ours base theirs" over fsys. It
// merges line by line and only handles inputs with equal line counts;
// anything else is reported as a conflict, like an overlapping edit.
func Diff3Handler(fsys afero.Fs) HandlerFunc {
	return func(args []string) (command.Result, error) {
		if len(args) != 4 || args[0] != "-m" {
			return command.Result{Status: 2, Stderr: "usage: diff3 -m ours base theirs"}, nil
		}
		read := func(p string) ([]string, bool) {
			data, err := afero.ReadFile(fsys, p)
			if err != nil {
				return nil, false
			}
			return strings.SplitAfter(string(data), "\n"), true
		}
		ours, ok1 := read(args[1])
		base, ok2 := read(args[2])
		theirs, ok3 := read(args[3])
		if !ok1 || !ok2 || !ok3 {
			return command.Result{Status: 2, Stderr: "diff3: cannot read input"}, nil
		}
		if len(ours) != len(base) || len(theirs) != len(base) {
			return command.Result{Status: 1}, nil
		}

		var out strings.Builder
		for i := range base {
			switch {
			case ours[i] == base[i]:
				out.WriteString(theirs[i])
			case theirs[i] == base[i], ours[i] == theirs[i]:
				out.WriteString(ours[i])
			default:
				return command.Result{Status: 1}, nil
			}
		}
		return command.Result{Stdout: out.String()}, nil
	}
}
