// Package confirm provides the yes/no decision points a conversion stops at.
package confirm

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Confirmer asks a yes/no question. Anything but an explicit yes is no.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// New picks a Confirmer: Auto when assumeYes is set, a huh form when both
// in and out are terminals, a line prompt otherwise.
func New(assumeYes bool, in, out *os.File) Confirmer {
	if assumeYes {
		return Auto{}
	}
	if isTerminal(in) && isTerminal(out) {
		return NewHuh()
	}
	return NewConsole(in, out)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Auto answers yes to everything
type Auto struct{}

// Confirm implements Confirmer
func (Auto) Confirm(prompt string) (bool, error) {
	logger := logging.GetLogger("confirm")
	logger.Info().Str("prompt", prompt).Msg("Assuming yes")
	return true, nil
}

// Console prompts on a line-oriented stream
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a Console reading answers from in
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Confirm implements Confirmer. End of input counts as no.
func (c *Console) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to write prompt")
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !stderrors.Is(err, io.EOF) {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to read user input")
	}
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Huh prompts with a charmbracelet/huh confirm form
type Huh struct {
	run func(*huh.Form) error
}

// NewHuh creates a Huh confirmer
func NewHuh() *Huh {
	return &Huh{run: func(f *huh.Form) error { return f.Run() }}
}

// Confirm implements Confirmer. Aborting the form (ctrl+c) is a user abort.
func (h *Huh) Confirm(prompt string) (bool, error) {
	var value bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&value),
	))
	if err := h.run(form); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return false, errors.Wrap(err, errors.ErrUserAbort, "aborted by user")
		}
		return false, errors.Wrap(err, errors.ErrInternal, "confirmation form failed")
	}
	return value, nil
}
