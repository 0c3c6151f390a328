package intcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInputExhausted is returned by the provided input adapters when they have
// no more values.
var ErrInputExhausted = errors.New("input exhausted")

// ReaderInput returns an InputFunc reading one decimal integer per line from r.
// Blank lines are skipped.
func ReaderInput(r io.Reader) InputFunc {
	scanner := bufio.NewScanner(r)
	line := 0
	return func() (int64, error) {
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			v, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: %w", line, err)
			}
			return v, nil
		}
		if err := scanner.Err(); err != nil {
			return 0, fmt.Errorf("read input: %w", err)
		}
		return 0, ErrInputExhausted
	}
}

// WriterOutput returns an OutputFunc writing each value to w in decimal,
// followed by sep.
func WriterOutput(w io.Writer, sep string) OutputFunc {
	var buf []byte
	return func(v int64) error {
		buf = strconv.AppendInt(buf[:0], v, 10)
		buf = append(buf, sep...)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
}

// SliceInput returns an InputFunc yielding values in order.
func SliceInput(values ...int64) InputFunc {
	i := 0
	return func() (int64, error) {
		if i >= len(values) {
			return 0, ErrInputExhausted
		}
		v := values[i]
		i++
		return v, nil
	}
}

// CollectOutput returns an OutputFunc appending every value to dst.
func CollectOutput(dst *[]int64) OutputFunc {
	return func(v int64) error {
		*dst = append(*dst, v)
		return nil
	}
}

// NoInput is an InputFunc for programs that must not read.
func NoInput() (int64, error) {
	return 0, errNoInput
}

// NoOutput is an OutputFunc for programs that must not print.
func NoOutput(int64) error {
	return errNoOutput
}
