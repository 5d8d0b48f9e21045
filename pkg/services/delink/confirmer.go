package delink

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
)

// terminalConfirmer prompts on the given writer and reads y/N/s answers
// from the given reader, one line per candidate.
type terminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalConfirmer(in io.Reader, out io.Writer) Confirmer {
	return &terminalConfirmer{in: bufio.NewReader(in), out: out}
}

func (t *terminalConfirmer) Confirm(_ context.Context, c domain.DelinkCandidate) (Confirmation, error) {
	for {
		fmt.Fprintf(t.out, "Delink %q (created %s) from billing? (y/N/s=skip all): ",
			c.Project.ID, c.Project.CreateTime.Format("2006-01-02"))

		line, err := t.in.ReadString('\n')
		if err != nil && line == "" {
			return ConfirmNo, fmt.Errorf("failed to read confirmation: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return ConfirmYes, nil
		case "", "n", "no":
			return ConfirmNo, nil
		case "s", "skip":
			return ConfirmSkipAll, nil
		}
		fmt.Fprintln(t.out, "Please answer 'y', 'n', or 's' to skip all remaining projects.")
	}
}
