package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/quarryhq/mason/internal/session"
)

// basicShell is the fallback console: a plain buffered line loop. Line
// editing comes from the terminal's cooked mode when one is attached;
// there is nothing to enable and nothing that can fail.
type basicShell struct {
	sess *session.Session
	in   io.Reader
	out  io.Writer
}

func (b *basicShell) Run(banner string) error {
	fmt.Fprint(b.out, banner)
	r := bufio.NewReader(b.in)
	for {
		fmt.Fprint(b.out, ">>> ")
		line, err := b.readLine(r)
		if err == io.EOF {
			if line != "" {
				evalLine(b.sess, b.out, line)
			}
			fmt.Fprintln(b.out)
			return nil
		}
		if err != nil {
			return err
		}
		if evalLine(b.sess, b.out, line) {
			return nil
		}
	}
}

// readLine returns the next input line without its trailing newline.
// End-of-input is passed through unchanged; this is the hook point for
// saving shell state before exit, which currently does nothing.
func (b *basicShell) readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF {
		return line, io.EOF
	}
	return line, err
}
