package cli

import (
	"errors"
	"io"
	"strings"
)

type exitCoder interface {
	ExitCode() int
}

// Fail prints a short, single-line error to w and returns the process exit
// status. Usage and stack traces are never printed.
func Fail(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if msg == "" {
		msg = "error"
	}
	_, _ = io.WriteString(w, msg+"\n")
	code := 1
	var ec exitCoder
	if errors.As(err, &ec) {
		if c := ec.ExitCode(); c != 0 {
			code = c
		}
	}
	return code
}
