package menu

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// Lines reads trimmed input lines on a background goroutine so that a
// caller waiting for the user can give up when its context is done. A read
// abandoned that way is not lost: the next call to Next returns it.
type Lines struct {
	in      *bufio.Reader
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewLines returns a Lines reading from r.
func NewLines(r io.Reader) *Lines {
	return &Lines{in: bufio.NewReader(r)}
}

// Next returns the next line, or ctx.Err() if ctx is done first.
func (l *Lines) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if l.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := ReadLine(l.in)
			ch <- lineResult{line: line, err: err}
		}()
		l.pending = ch
	}

	select {
	case r := <-l.pending:
		l.pending = nil
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ReadLine reads one line and trims surrounding space. A final line
// without a newline is returned; io.EOF is returned only when nothing was read.
func ReadLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
