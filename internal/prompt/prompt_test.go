package prompt

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadLine(t *testing.T) {
	r := NewReader(strings.NewReader("hello\r\nworld\nlast"), 16)
	for _, want := range []string{"hello", "world", "last"} {
		got, err := r.ReadLine()
		if err != nil {
			t.Fatalf("read %q: %v", want, err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReadLine_TooLong(t *testing.T) {
	long := strings.Repeat("x", 10000)
	r := NewReader(strings.NewReader(long+"\nok\n"), 8)
	if _, err := r.ReadLine(); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("expected ErrLineTooLong, got %v", err)
	}
	got, err := r.ReadLine()
	if err != nil || got != "ok" {
		t.Fatalf("expected next line ok, got %q, %v", got, err)
	}
}

func TestReadLine_ExactLimit(t *testing.T) {
	got, err := ReadLine(strings.NewReader("abcd\n"), 4)
	if err != nil || got != "abcd" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := ReadLine(strings.NewReader("abcde\n"), 4); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("expected ErrLineTooLong, got %v", err)
	}
}

func TestReadLine_Empty(t *testing.T) {
	if _, err := ReadLine(strings.NewReader(""), 0); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	got, err := ReadLine(strings.NewReader("\n"), 0)
	if err != nil || got != "" {
		t.Fatalf("got %q, %v", got, err)
	}
}
