package mathseq

import (
	"errors"
	"fmt"
)

const (
	// MaxFactorial is the largest n whose factorial fits in a uint64.
	MaxFactorial = 20
	// MaxFibonacci is the longest sequence whose every term fits in a uint64.
	MaxFibonacci = 94
)

var (
	ErrNegative = errors.New("negative input")
	ErrOverflow = errors.New("result overflows uint64")
)

// Factorial returns n!.
func Factorial(n int) (uint64, error) {
	if n < 0 {
		return 0, fmt.Errorf("factorial of %d: %w", n, ErrNegative)
	}
	if n > MaxFactorial {
		return 0, fmt.Errorf("factorial of %d: %w", n, ErrOverflow)
	}
	out := uint64(1)
	for i := 2; i <= n; i++ {
		out *= uint64(i)
	}
	return out, nil
}

// Fibonacci returns the first n numbers of the sequence seeded 0, 1.
func Fibonacci(n int) ([]uint64, error) {
	if n < 0 {
		return nil, fmt.Errorf("fibonacci of %d: %w", n, ErrNegative)
	}
	if n > MaxFibonacci {
		return nil, fmt.Errorf("fibonacci of %d: %w", n, ErrOverflow)
	}
	out := make([]uint64, 0, n)
	curr, next := uint64(0), uint64(1)
	for i := 0; i < n; i++ {
		out = append(out, curr)
		// next wraps on the last iterations; wrapped values are never appended.
		curr, next = next, curr+next
	}
	return out, nil
}

// BinaryOp is an operation chosen at runtime.
type BinaryOp func(a, b int) int

func Add(a, b int) int { return a + b }

// Apply runs op, treating a nil op as Add.
func Apply(op BinaryOp, a, b int) int {
	if op == nil {
		op = Add
	}
	return op(a, b)
}
