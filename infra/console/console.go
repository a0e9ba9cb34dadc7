package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type Console struct {
	in    *bufio.Reader
	out   io.Writer
	color bool
}

// New wraps the given streams. Colour is enabled only when out is a
// terminal.
func New(in io.Reader, out io.Writer) *Console {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Console{in: bufio.NewReader(in), out: out, color: color}
}

// Ask prints question and reads one line. The trailing newline is dropped;
// everything else is returned as typed.
func (c *Console) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintln(c.out, c.paint(cyan, question))

	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) Say(message string) {
	fmt.Fprintln(c.out, message)
}

const (
	bold  = "\033[1m"
	cyan  = "\033[36m"
	reset = "\033[0m"
)

func (c *Console) paint(style, text string) string {
	if !c.color {
		return text
	}
	return style + text + reset
}
