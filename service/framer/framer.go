// Package framer turns a raw byte stream into complete text lines.
package framer

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
)

// Framer splits a reader into lines terminated by '\n'. A trailing "\r" is
// dropped as well. Bytes after the last newline are buffered until the
// stream ends and then returned as a final line.
type Framer struct {
	reader *bufio.Reader
	err    error
}

// New creates a framer reading from r
func New(r io.Reader) *Framer {
	return &Framer{reader: bufio.NewReader(r)}
}

// Lines returns a lazy sequence of lines. Breaking out of a range loop
// leaves the framer positioned after the last yielded line, so a later call
// continues from there. The sequence ends on EOF or on the first read error.
func (f *Framer) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for f.err == nil {
			line, err := f.reader.ReadString('\n')
			if err != nil {
				f.err = err
				if line == "" {
					return
				}
			}
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !yield(line) {
				return
			}
		}
	}
}

// Err returns the read error that ended the stream, nil for a clean EOF
func (f *Framer) Err() error {
	if errors.Is(f.err, io.EOF) {
		return nil
	}
	return f.err
}

// Lines is a shortcut for New(r).Lines()
func Lines(r io.Reader) iter.Seq[string] {
	return New(r).Lines()
}
