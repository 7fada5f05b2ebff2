package testutil

import (
	"context"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/command"
)

// Call is one recorded invocation of a FakeRunner
type Call struct {
	Name string
	Args []string
}

// String renders the call as a shell-like command line
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// HandlerFunc computes a response for a matched command
type HandlerFunc func(args []string) (command.Result, error)

// FakeRunner is a scripted command.Runner. Responses are keyed by command
// line prefix; the longest matching prefix wins. Unmatched commands succeed
// with empty output.
type FakeRunner struct {
	handlers map[string]HandlerFunc
	calls    []Call
}

// NewFakeRunner creates a FakeRunner with no scripted responses
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{handlers: make(map[string]HandlerFunc)}
}

// On scripts a fixed result for commands starting with prefix
func (f *FakeRunner) On(prefix string, result command.Result) *FakeRunner {
	return f.Handle(prefix, func([]string) (command.Result, error) {
		return result, nil
	})
}

// OnStdout scripts a successful result with the given stdout
func (f *FakeRunner) OnStdout(prefix, stdout string) *FakeRunner {
	return f.On(prefix, command.Result{Stdout: stdout})
}

// OnStatus scripts an exit status with empty output
func (f *FakeRunner) OnStatus(prefix string, status int) *FakeRunner {
	return f.On(prefix, command.Result{Status: status})
}

// OnError scripts a start failure for commands starting with prefix
func (f *FakeRunner) OnError(prefix string, err error) *FakeRunner {
	return f.Handle(prefix, func([]string) (command.Result, error) {
		return command.Result{Status: -1}, err
	})
}

// Handle registers a dynamic handler for commands starting with prefix
func (f *FakeRunner) Handle(prefix string, fn HandlerFunc) *FakeRunner {
	f.handlers[prefix] = fn
	return f
}

// Run implements command.Runner
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (command.Result, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}
	f.calls = append(f.calls, call)

	if err := ctx.Err(); err != nil {
		return command.Result{Status: -1}, err
	}

	line := call.String()
	best := ""
	var handler HandlerFunc
	for prefix, fn := range f.handlers {
		if !matchesPrefix(line, prefix) {
			continue
		}
		if handler == nil || len(prefix) > len(best) {
			best, handler = prefix, fn
		}
	}
	if handler == nil {
		return command.Result{}, nil
	}
	return handler(call.Args)
}

func matchesPrefix(line, prefix string) bool {
	if !strings.HasPrefix(line, prefix) {
		return false
	}
	return len(line) == len(prefix) || line[len(prefix)] == ' '
}

// Calls returns every recorded invocation in order
func (f *FakeRunner) Calls() []Call {
	return f.calls
}

// Commands returns every recorded invocation as a command line
func (f *FakeRunner) Commands() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.String())
	}
	return out
}

// Called reports whether any invocation starts with prefix
func (f *FakeRunner) Called(prefix string) bool {
	for _, c := range f.calls {
		if matchesPrefix(c.String(), prefix) {
			return true
		}
	}
	return false
}
