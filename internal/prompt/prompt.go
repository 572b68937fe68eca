// Package prompt reads bounded lines of user input.
package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// DefaultMaxLine is used when a Reader is created with a non-positive limit.
const DefaultMaxLine = 4096

// ErrLineTooLong is returned when a line exceeds the configured limit. The
// rest of the offending line is consumed so the next read starts clean.
var ErrLineTooLong = errors.New("input line too long")

// Reader reads lines of at most Max bytes, excluding the terminator.
type Reader struct {
	br  *bufio.Reader
	max int
}

func NewReader(r io.Reader, max int) *Reader {
	if max <= 0 {
		max = DefaultMaxLine
	}
	return &Reader{br: bufio.NewReader(r), max: max}
}

// ReadLine returns the next line without its "\n" or "\r\n" terminator.
// io.EOF is returned only when no bytes were read.
func (r *Reader) ReadLine() (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := r.br.ReadSlice('\n')
		if !tooLong {
			buf = append(buf, chunk...)
			if len(bytes.TrimRight(buf, "\r\n")) > r.max {
				tooLong = true
				buf = nil
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if tooLong {
			if err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			return "", ErrLineTooLong
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(bytes.TrimRight(buf, "\r\n")), nil
			}
			return "", err
		}
		return string(bytes.TrimRight(buf, "\r\n")), nil
	}
}

// ReadLine reads a single bounded line from r.
func ReadLine(r io.Reader, max int) (string, error) {
	return NewReader(r, max).ReadLine()
}
