package menu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Select resolves the operation to run. A non-zero configured operation wins;
// otherwise the user is prompted, which requires an interactive terminal.
func Select(configured int, in io.Reader, out io.Writer) (Operation, error) {
	if configured != 0 {
		op, ok := ByID(configured)
		if !ok {
			return Operation{}, fmt.Errorf("unknown operation: %d", configured)
		}
		return op, nil
	}

	if !stdinIsTerminal(in) {
		return Operation{}, fmt.Errorf("no operation selected; pass --op=1..%d when not running interactively", len(Operations))
	}

	fmt.Fprintln(out, "Select an operation:")
	for _, op := range Operations {
		fmt.Fprintf(out, "  %d  %s\n", op.ID, op.Name)
	}
	fmt.Fprint(out, "> ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return Operation{}, fmt.Errorf("failed to read selection: %w", err)
	}

	id, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return Operation{}, fmt.Errorf("selection must be a number between 1 and %d", len(Operations))
	}

	op, ok := ByID(id)
	if !ok {
		return Operation{}, fmt.Errorf("unknown operation: %d", id)
	}
	return op, nil
}

// Confirm asks before an apply operation mutates anything. Dry runs and
// assumeYes skip the prompt. Without a terminal an apply is refused rather
// than silently executed.
func Confirm(op Operation, assumeYes bool, in io.Reader, out io.Writer) (bool, error) {
	if !op.Apply || assumeYes {
		return true, nil
	}

	if !stdinIsTerminal(in) {
		return false, fmt.Errorf("operation %d mutates files; pass --yes to run it non-interactively", op.ID)
	}

	fmt.Fprintf(out, "%s will modify files. Continue? [y/N] ", op.Name)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func stdinIsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		// Non-file readers (tests) count as interactive.
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
