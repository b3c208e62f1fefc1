package console

import (
	"errors"
	"io"
	"os"

	"github.com/quarryhq/mason/internal/session"
	"golang.org/x/term"
)

// ErrUnavailable reports that the enhanced console's terminal dependency is
// missing, so the caller should fall back to the basic console.
var ErrUnavailable = errors.New("enhanced console unavailable")

// Launch starts the enhanced console and falls back to the basic one when
// its dependency is unavailable.
func Launch(sess *session.Session, banner string) error {
	err := (&termShell{sess: sess, tty: os.Stdin, out: os.Stdout}).Run(banner)
	if !errors.Is(err, ErrUnavailable) {
		return err
	}
	return (&basicShell{sess: sess, in: os.Stdin, out: os.Stdout}).Run(banner)
}

// termShell is the enhanced console: a raw-mode terminal with line editing
// and history via x/term.
type termShell struct {
	sess *session.Session
	tty  *os.File
	out  *os.File
}

func (t *termShell) Run(banner string) error {
	fd := int(t.tty.Fd())
	if !term.IsTerminal(fd) {
		return ErrUnavailable
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return ErrUnavailable
	}
	defer func() { _ = term.Restore(fd, old) }()

	screen := struct {
		io.Reader
		io.Writer
	}{t.tty, t.out}
	tm := term.NewTerminal(screen, ">>> ")
	if _, err := tm.Write([]byte(banner)); err != nil {
		return err
	}

	for {
		line, err := t.readLine(tm)
		if err == io.EOF {
			_, _ = tm.Write([]byte("\n"))
			return nil
		}
		if err != nil {
			return err
		}
		if evalLine(t.sess, tm, line) {
			return nil
		}
	}
}

// readLine returns the next input line. End-of-input is passed through
// unchanged; this is the hook point for saving shell state before exit,
// which currently does nothing.
func (t *termShell) readLine(tm *term.Terminal) (string, error) {
	line, err := tm.ReadLine()
	if err == io.EOF {
		return line, io.EOF
	}
	return line, err
}
