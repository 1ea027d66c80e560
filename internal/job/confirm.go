// internal/job/confirm.go
package job

import (
	"bufio"
	"fmt"
	"io"
)

// Confirmer asks a yes/no question and blocks until it is answered
type Confirmer interface {
	Confirm(prompt string) bool
}

// LineConfirmer writes the prompt to out and reads one line from in. Only
// a line starting with 'y' or 'Y' is a yes; an empty line or the end of
// the input is a no.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer creates a confirmer. The same confirmer must be reused
// for every prompt of a run since it buffers in.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm implements Confirmer
func (c *LineConfirmer) Confirm(prompt string) bool {
	fmt.Fprint(c.out, prompt)

	line, _ := c.in.ReadString('\n')
	if line == "" {
		return false
	}
	return line[0] == 'y' || line[0] == 'Y'
}
