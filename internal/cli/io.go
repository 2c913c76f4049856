package cli

import (
	"fmt"
	"io"
)

// IO bundles a command's stdin/stdout/stderr so command bodies never reach
// for os.Stdin/os.Stdout/os.Stderr directly, keeping them testable against
// buffers.
type IO struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(in io.Reader, out, errOut io.Writer) *IO {
	return &IO{in: in, out: out, errOut: errOut}
}

// In returns the reader commands read from for VALUE `-` and confirmation
// prompts.
func (o *IO) In() io.Reader {
	return o.in
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}
